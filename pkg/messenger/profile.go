package messenger

import (
	"errors"

	"github.com/orfon/fbmessenger/pkg/graph"
)

var (
	errNoProfileFields = errors.New("at least one profile field is required")
	errNoMenuItems     = errors.New("persistent menu requires at least one item")
	errBadAudienceType = errors.New("target audience type must be all, none or custom")
	errNoGreetingText  = errors.New("greeting requires at least one localized text")
	errNoDomains       = errors.New("domain whitelist requires at least one domain")
	errMissingHomeURL  = errors.New("home url is required")
	errMissingLinkURL  = errors.New("account linking url is required")
	errMissingGetStart = errors.New("get started payload is required")
	errBadWebviewShare = errors.New("home url webview share button must be show or hide")
)

// Greeting is one localized greeting text. The "default" locale is the
// fallback shown to users with no better match.
type Greeting struct {
	Locale string `json:"locale"`
	Text   string `json:"text"`
}

// MenuItem is one entry of a persistent menu. Nested menus set Type to
// "nested" and fill CallToActions.
type MenuItem struct {
	Type          string     `json:"type"`
	Title         string     `json:"title"`
	URL           string     `json:"url,omitempty"`
	Payload       string     `json:"payload,omitempty"`
	CallToActions []MenuItem `json:"call_to_actions,omitempty"`
}

// PersistentMenu is the menu shown for one locale.
type PersistentMenu struct {
	Locale                string     `json:"locale"`
	ComposerInputDisabled bool       `json:"composer_input_disabled,omitempty"`
	CallToActions         []MenuItem `json:"call_to_actions"`
}

// TargetAudience restricts which countries can discover the page's bot.
type TargetAudience struct {
	AudienceType string        `json:"audience_type"`
	Countries    *CountryLists `json:"countries,omitempty"`
}

// CountryLists carries the allow and deny lists of a custom target audience
// as ISO 3166 alpha-2 codes.
type CountryLists struct {
	Whitelist []string `json:"whitelist,omitempty"`
	Blacklist []string `json:"blacklist,omitempty"`
}

// HomeURL configures the chat extension home view.
type HomeURL struct {
	URL                string `json:"url"`
	WebviewHeightRatio string `json:"webview_height_ratio"`
	WebviewShareButton string `json:"webview_share_button,omitempty"`
	InTest             bool   `json:"in_test"`
}

// SetGreeting installs the localized greeting texts shown before the first
// message.
func (c *Client) SetGreeting(greetings []Greeting) (graph.Response, error) {
	if len(greetings) == 0 {
		return nil, graph.WrapConfig(errNoGreetingText)
	}
	return c.submit(graph.POST, profileEndpoint, map[string]any{"greeting": greetings})
}

// SetGetStarted installs the postback payload sent when a user taps the Get
// Started button.
func (c *Client) SetGetStarted(payload string) (graph.Response, error) {
	if payload == "" {
		return nil, graph.WrapConfig(errMissingGetStart)
	}
	return c.submit(graph.POST, profileEndpoint, map[string]any{
		"get_started": map[string]string{"payload": payload},
	})
}

// SetPersistentMenu installs the per-locale persistent menus.
func (c *Client) SetPersistentMenu(menus []PersistentMenu) (graph.Response, error) {
	if len(menus) == 0 {
		return nil, graph.WrapConfig(errNoMenuItems)
	}
	for _, menu := range menus {
		if len(menu.CallToActions) == 0 {
			return nil, graph.WrapConfig(errNoMenuItems)
		}
	}
	return c.submit(graph.POST, profileEndpoint, map[string]any{"persistent_menu": menus})
}

// SetWhitelistedDomains registers domains the webview and extensions may load.
func (c *Client) SetWhitelistedDomains(domains []string) (graph.Response, error) {
	if len(domains) == 0 {
		return nil, graph.WrapConfig(errNoDomains)
	}
	return c.submit(graph.POST, profileEndpoint, map[string]any{"whitelisted_domains": domains})
}

// SetAccountLinkingURL registers the URL the account linking flow opens.
func (c *Client) SetAccountLinkingURL(url string) (graph.Response, error) {
	if url == "" {
		return nil, graph.WrapConfig(errMissingLinkURL)
	}
	return c.submit(graph.POST, profileEndpoint, map[string]any{"account_linking_url": url})
}

// SetTargetAudience restricts bot discovery to the given audience. The type
// is "all", "none" or "custom"; only "custom" reads the country lists.
func (c *Client) SetTargetAudience(audience TargetAudience) (graph.Response, error) {
	switch audience.AudienceType {
	case "all", "none", "custom":
	default:
		return nil, graph.WrapConfig(errBadAudienceType)
	}
	if audience.AudienceType != "custom" {
		audience.Countries = nil
	}
	return c.submit(graph.POST, profileEndpoint, map[string]any{"target_audience": audience})
}

// SetHomeURL configures the chat extension home view.
func (c *Client) SetHomeURL(home HomeURL) (graph.Response, error) {
	if home.URL == "" {
		return nil, graph.WrapConfig(errMissingHomeURL)
	}
	if home.WebviewHeightRatio == "" {
		home.WebviewHeightRatio = "tall"
	}
	if home.WebviewShareButton != "" && home.WebviewShareButton != "show" && home.WebviewShareButton != "hide" {
		return nil, graph.WrapConfig(errBadWebviewShare)
	}
	return c.submit(graph.POST, profileEndpoint, map[string]any{"home_url": home})
}

// DeleteProfileFields removes the named messenger profile fields, e.g.
// "greeting" or "persistent_menu".
func (c *Client) DeleteProfileFields(fields []string) (graph.Response, error) {
	if len(fields) == 0 {
		return nil, graph.WrapConfig(errNoProfileFields)
	}
	return c.submit(graph.DELETE, profileEndpoint, map[string]any{"fields": fields})
}

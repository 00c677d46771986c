package messenger

import (
	"errors"
	"strings"

	"github.com/orfon/fbmessenger/pkg/graph"
)

var errMissingUserID = errors.New("user id is required")

// UserProfile is the public profile of a page-scoped user id.
type UserProfile struct {
	FirstName  string `json:"first_name"`
	LastName   string `json:"last_name"`
	ProfilePic string `json:"profile_pic,omitempty"`
	Locale     string `json:"locale,omitempty"`
	Timezone   int    `json:"timezone,omitempty"`
	Gender     string `json:"gender,omitempty"`
}

// GetUserProfile looks up profile fields for a page-scoped user id. With no
// fields given it asks for first and last name. Lookups always go out
// immediately, even on a batch-mode client.
func (c *Client) GetUserProfile(userID string, fields ...string) (*UserProfile, error) {
	if userID == "" {
		return nil, graph.WrapConfig(errMissingUserID)
	}
	if len(fields) == 0 {
		fields = []string{"first_name", "last_name"}
	}

	resp, err := c.graph.Request().
		WithMethod(graph.GET).
		WithEndpoint(userID).
		WithQuery("fields", strings.Join(fields, ",")).
		Execute()
	if err != nil {
		return nil, err
	}

	profile := &UserProfile{}
	if err := resp.Decode(profile); err != nil {
		return nil, err
	}
	return profile, nil
}

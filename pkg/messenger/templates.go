package messenger

import (
	"errors"

	"github.com/orfon/fbmessenger/pkg/graph"
)

var (
	errNoTemplateElements = errors.New("template requires at least one element")
	errNoTemplateButtons  = errors.New("template requires at least one button")
)

// Button is one pressable element on a structured template. The Type field
// selects which of the remaining fields the Send API reads.
type Button struct {
	Type                string `json:"type"`
	Title               string `json:"title,omitempty"`
	URL                 string `json:"url,omitempty"`
	Payload             string `json:"payload,omitempty"`
	WebviewHeightRatio  string `json:"webview_height_ratio,omitempty"`
	MessengerExtensions bool   `json:"messenger_extensions,omitempty"`
	FallbackURL         string `json:"fallback_url,omitempty"`
}

// URLButton opens a web page.
func URLButton(title, url string) Button {
	return Button{Type: "web_url", Title: title, URL: url}
}

// PostbackButton sends its payload back through the webhook.
func PostbackButton(title, payload string) Button {
	return Button{Type: "postback", Title: title, Payload: payload}
}

// CallButton dials a phone number. The payload must carry the number.
func CallButton(title, phoneNumber string) Button {
	return Button{Type: "phone_number", Title: title, Payload: phoneNumber}
}

// ShareButton lets the user forward the enclosing element.
func ShareButton() Button {
	return Button{Type: "element_share"}
}

// AccountLinkButton starts the account linking flow against the given URL.
func AccountLinkButton(url string) Button {
	return Button{Type: "account_link", URL: url}
}

// DefaultAction is the tap target of a template element.
type DefaultAction struct {
	Type               string `json:"type"`
	URL                string `json:"url"`
	WebviewHeightRatio string `json:"webview_height_ratio,omitempty"`
}

// GenericElement is one card in a generic or list template.
type GenericElement struct {
	Title         string         `json:"title"`
	Subtitle      string         `json:"subtitle,omitempty"`
	ImageURL      string         `json:"image_url,omitempty"`
	DefaultAction *DefaultAction `json:"default_action,omitempty"`
	Buttons       []Button       `json:"buttons,omitempty"`
}

// OpenGraphElement is the single element of an open graph template.
type OpenGraphElement struct {
	URL     string   `json:"url"`
	Buttons []Button `json:"buttons,omitempty"`
}

// ReceiptElement is one purchased item on a receipt template.
type ReceiptElement struct {
	Title    string  `json:"title"`
	Subtitle string  `json:"subtitle,omitempty"`
	Quantity int     `json:"quantity,omitempty"`
	Price    float64 `json:"price"`
	Currency string  `json:"currency,omitempty"`
	ImageURL string  `json:"image_url,omitempty"`
}

// ReceiptAddress is the shipping address block of a receipt template.
type ReceiptAddress struct {
	Street1    string `json:"street_1"`
	Street2    string `json:"street_2,omitempty"`
	City       string `json:"city"`
	PostalCode string `json:"postal_code"`
	State      string `json:"state"`
	Country    string `json:"country"`
}

// ReceiptSummary is the totals block of a receipt template.
type ReceiptSummary struct {
	Subtotal     float64 `json:"subtotal,omitempty"`
	ShippingCost float64 `json:"shipping_cost,omitempty"`
	TotalTax     float64 `json:"total_tax,omitempty"`
	TotalCost    float64 `json:"total_cost"`
}

// ReceiptAdjustment is one discount line on a receipt template.
type ReceiptAdjustment struct {
	Name   string  `json:"name"`
	Amount float64 `json:"amount"`
}

// ReceiptTemplate is an order confirmation.
type ReceiptTemplate struct {
	TemplateType  string              `json:"template_type"`
	RecipientName string              `json:"recipient_name"`
	OrderNumber   string              `json:"order_number"`
	Currency      string              `json:"currency"`
	PaymentMethod string              `json:"payment_method"`
	OrderURL      string              `json:"order_url,omitempty"`
	Timestamp     int64               `json:"timestamp,omitempty,string"`
	Elements      []ReceiptElement    `json:"elements,omitempty"`
	Address       *ReceiptAddress     `json:"address,omitempty"`
	Summary       ReceiptSummary      `json:"summary"`
	Adjustments   []ReceiptAdjustment `json:"adjustments,omitempty"`
}

// AirlineAirport identifies one end of a flight segment.
type AirlineAirport struct {
	AirportCode string `json:"airport_code"`
	City        string `json:"city"`
	Terminal    string `json:"terminal,omitempty"`
	Gate        string `json:"gate,omitempty"`
}

// AirlineFlightSchedule carries the departure and arrival times of a segment.
type AirlineFlightSchedule struct {
	DepartureTime string `json:"departure_time"`
	ArrivalTime   string `json:"arrival_time,omitempty"`
	BoardingTime  string `json:"boarding_time,omitempty"`
}

// AirlineFlightInfo is one flight segment on a boarding pass.
type AirlineFlightInfo struct {
	FlightNumber     string                `json:"flight_number"`
	DepartureAirport AirlineAirport        `json:"departure_airport"`
	ArrivalAirport   AirlineAirport        `json:"arrival_airport"`
	FlightSchedule   AirlineFlightSchedule `json:"flight_schedule"`
}

// AirlineBoardingPass is one passenger's pass on a boarding pass template.
type AirlineBoardingPass struct {
	PassengerName string            `json:"passenger_name"`
	PNRNumber     string            `json:"pnr_number"`
	Seat          string            `json:"seat,omitempty"`
	LogoImageURL  string            `json:"logo_image_url"`
	AboveBarCode  string            `json:"above_bar_code_image_url,omitempty"`
	QRCode        string            `json:"qr_code,omitempty"`
	BarcodeImage  string            `json:"barcode_image_url,omitempty"`
	FlightInfo    AirlineFlightInfo `json:"flight_info"`
}

// AirlineBoardingPassTemplate carries boarding passes for one itinerary.
type AirlineBoardingPassTemplate struct {
	TemplateType string                `json:"template_type"`
	IntroMessage string                `json:"intro_message"`
	Locale       string                `json:"locale"`
	ThemeColor   string                `json:"theme_color,omitempty"`
	BoardingPass []AirlineBoardingPass `json:"boarding_pass"`
}

// templatePayload is the generic attachment payload wrapper shared by the
// simpler template kinds.
type templatePayload struct {
	TemplateType    string   `json:"template_type"`
	Text            string   `json:"text,omitempty"`
	TopElementStyle string   `json:"top_element_style,omitempty"`
	Elements        any      `json:"elements,omitempty"`
	Buttons         []Button `json:"buttons,omitempty"`
}

// SendTemplate sends an arbitrary template attachment payload. The payload
// must marshal to a JSON object with a template_type member; the typed
// helpers below cover the documented template kinds.
func (c *Client) SendTemplate(recipientID string, payload any, opts ...SendOption) (graph.Response, error) {
	message := &Message{Attachment: &Attachment{
		Type:    AttachmentTemplate,
		Payload: payload,
	}}
	return c.SendMessage(recipientID, message, opts...)
}

// SendGenericTemplate sends a horizontally scrollable card carousel.
func (c *Client) SendGenericTemplate(recipientID string, elements []GenericElement, opts ...SendOption) (graph.Response, error) {
	if len(elements) == 0 {
		return nil, graph.WrapConfig(errNoTemplateElements)
	}
	return c.SendTemplate(recipientID, &templatePayload{
		TemplateType: "generic",
		Elements:     elements,
	}, opts...)
}

// SendButtonTemplate sends a text message with up to three buttons.
func (c *Client) SendButtonTemplate(recipientID, text string, buttons []Button, opts ...SendOption) (graph.Response, error) {
	if len(buttons) == 0 {
		return nil, graph.WrapConfig(errNoTemplateButtons)
	}
	return c.SendTemplate(recipientID, &templatePayload{
		TemplateType: "button",
		Text:         text,
		Buttons:      buttons,
	}, opts...)
}

// SendListTemplate sends a vertically stacked element list. The top element
// style is "large" or "compact" per the Send API.
func (c *Client) SendListTemplate(recipientID, topElementStyle string, elements []GenericElement, buttons []Button, opts ...SendOption) (graph.Response, error) {
	if len(elements) == 0 {
		return nil, graph.WrapConfig(errNoTemplateElements)
	}
	return c.SendTemplate(recipientID, &templatePayload{
		TemplateType:    "list",
		TopElementStyle: topElementStyle,
		Elements:        elements,
		Buttons:         buttons,
	}, opts...)
}

// SendOpenGraphTemplate sends an open graph element, typically a song link.
func (c *Client) SendOpenGraphTemplate(recipientID string, element OpenGraphElement, opts ...SendOption) (graph.Response, error) {
	return c.SendTemplate(recipientID, &templatePayload{
		TemplateType: "open_graph",
		Elements:     []OpenGraphElement{element},
	}, opts...)
}

// SendReceiptTemplate sends an order confirmation.
func (c *Client) SendReceiptTemplate(recipientID string, receipt *ReceiptTemplate, opts ...SendOption) (graph.Response, error) {
	receipt.TemplateType = "receipt"
	return c.SendTemplate(recipientID, receipt, opts...)
}

// SendAirlineBoardingPassTemplate sends boarding passes for an itinerary.
func (c *Client) SendAirlineBoardingPassTemplate(recipientID string, template *AirlineBoardingPassTemplate, opts ...SendOption) (graph.Response, error) {
	template.TemplateType = "airline_boardingpass"
	return c.SendTemplate(recipientID, template, opts...)
}

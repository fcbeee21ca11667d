package notification

import (
	"bytes"
	"fmt"
	htmltemplate "html/template"
	"strings"
	texttemplate "text/template"
)

const (
	docsURL       = "https://bayanlab.com/docs"
	attributesURL = "https://bayanlab.com/docs/attributes"
	contactURL    = "https://bayanlab.com/contact"
	quickStartURL = "https://api.bayanlab.com/v1/masajid"
)

var purchaseTextTemplate = texttemplate.Must(texttemplate.New("purchase_text").Parse(`Thank you for your purchase!

Your BayanLab {{.TierName}} License is now active.

API Key: {{.APIKey}}

Datasets included: {{.DatasetList}}

Quick Start:
curl -H "Authorization: Bearer {{.APIKey}}" \
  {{.QuickStartURL}}

Documentation: {{.DocsURL}}
Attribute Reference: {{.AttributesURL}}

Your license includes 1 year of updates. We'll reach out before it expires.

Questions? Reply to this email or visit {{.ContactURL}}

- The BayanLab Team`))

var purchaseHTMLTemplate = htmltemplate.Must(htmltemplate.New("purchase_html").Parse(`<!DOCTYPE html>
<html>
<head>
  <meta charset="utf-8">
  <meta name="viewport" content="width=device-width, initial-scale=1.0">
</head>
<body style="font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif; line-height: 1.6; color: #333; max-width: 600px; margin: 0 auto; padding: 20px;">
  <div style="text-align: center; margin-bottom: 30px;">
    <h1 style="color: #000; margin: 0;">BayanLab</h1>
  </div>

  <p>Thank you for your purchase!</p>

  <p>Your BayanLab <strong>{{.TierName}} License</strong> is now active.</p>

  <div style="background: #f5f5f5; border-radius: 8px; padding: 20px; margin: 20px 0;">
    <p style="margin: 0 0 10px 0; font-size: 14px; color: #666;">Your API Key</p>
    <code style="display: block; background: #fff; border: 1px solid #ddd; border-radius: 4px; padding: 12px; font-size: 14px; word-break: break-all;">{{.APIKey}}</code>
  </div>

  <p><strong>Datasets included:</strong> {{.DatasetList}}</p>

  <h3 style="margin-top: 30px;">Quick Start</h3>
  <pre style="background: #1a1a1a; color: #fff; border-radius: 8px; padding: 15px; overflow-x: auto; font-size: 13px;">curl -H "Authorization: Bearer {{.APIKey}}" \
  {{.QuickStartURL}}</pre>

  <p style="margin-top: 30px;">
    <a href="{{.DocsURL}}" style="display: inline-block; background: #000; color: #fff; padding: 12px 24px; border-radius: 6px; text-decoration: none; margin-right: 10px;">View Documentation</a>
    <a href="{{.AttributesURL}}" style="display: inline-block; background: #fff; color: #000; padding: 12px 24px; border-radius: 6px; text-decoration: none; border: 1px solid #ddd;">Attribute Reference</a>
  </p>

  <hr style="border: none; border-top: 1px solid #eee; margin: 40px 0;">

  <p style="color: #666; font-size: 14px;">
    Your license includes 1 year of updates. We'll reach out before it expires.
  </p>

  <p style="color: #666; font-size: 14px;">
    Questions? Reply to this email or visit <a href="{{.ContactURL}}" style="color: #000;">bayanlab.com/contact</a>
  </p>

  <p style="color: #999; font-size: 12px; margin-top: 30px;">
    &copy; {{.Year}} Multimode AI. All rights reserved.
  </p>
</body>
</html>`))

type purchaseData struct {
	TierName      string
	APIKey        string
	DatasetList   string
	Year          int
	QuickStartURL string
	DocsURL       string
	AttributesURL string
	ContactURL    string
}

func newPurchaseData(tierName, apiKey string, datasetNames []string, year int) purchaseData {
	return purchaseData{
		TierName:      tierName,
		APIKey:        apiKey,
		DatasetList:   strings.Join(datasetNames, ", "),
		Year:          year,
		QuickStartURL: quickStartURL,
		DocsURL:       docsURL,
		AttributesURL: attributesURL,
		ContactURL:    contactURL,
	}
}

// renderPurchaseEmail renders the text and HTML bodies of the purchase email.
func renderPurchaseEmail(data purchaseData) (html, text string, err error) {
	var textBuf bytes.Buffer
	if err := purchaseTextTemplate.Execute(&textBuf, data); err != nil {
		return "", "", fmt.Errorf("render purchase text template: %w", err)
	}
	var htmlBuf bytes.Buffer
	if err := purchaseHTMLTemplate.Execute(&htmlBuf, data); err != nil {
		return "", "", fmt.Errorf("render purchase html template: %w", err)
	}
	return htmlBuf.String(), textBuf.String(), nil
}

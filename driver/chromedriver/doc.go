// Package chromedriver implements the driver boundary on top of chromedp,
// driving a Chromium instance over the DevTools protocol.
package chromedriver

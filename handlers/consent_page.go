/*
# Module: handlers/consent_page.go
Embedded HTML template for the location consent page.

## Linked Modules
(None - static template only)

## Tags
http, html, template, consent

## Exports
(None - template is rendered by handlers)

<!-- LinkedDoc RDF -->
@prefix code: <https://schema.codedoc.org/> .
<this> a code:Module ;
    code:name "handlers/consent_page.go" ;
    code:description "Embedded HTML template for the location consent page" ;
    code:tags "http", "html", "template", "consent" .
<!-- End LinkedDoc RDF -->
*/
package handlers

import "html/template"

type consentPageData struct {
	RequestID string
}

var consentTemplate = template.Must(template.New("consent").Parse(consentHTML))

const consentHTML = `<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>Location Consent</title>
    <style>
        body { font-family: sans-serif; display: flex; justify-content: center; align-items: center; min-height: 100vh; background-color: #f0f0f0; text-align: center; margin: 20px; }
        .container { background: white; padding: 2.5rem; border-radius: 12px; box-shadow: 0 8px 30px rgba(0,0,0,0.1); max-width: 450px; }
        h1 { color: #333; }
        p { color: #555; font-size: 1.1rem; line-height: 1.6; }
        button { background-color: #007bff; color: white; border: none; padding: 15px 30px; border-radius: 8px; font-size: 1rem; font-weight: bold; cursor: pointer; transition: background-color 0.2s; }
        button:disabled { background-color: #ccc; }
    </style>
</head>
<body>
    <div class="container" id="container">
        <h1>Share Your Location</h1>
        <p>A request has been made for your location. Click the button to share.</p>
        <button id="share-btn">Share Location</button>
        <p id="status"></p>
    </div>
    <script>
        const requestId = '{{.RequestID}}';
        const shareBtn = document.getElementById('share-btn');
        const statusEl = document.getElementById('status');
        const containerEl = document.getElementById('container');
        shareBtn.addEventListener('click', () => {
            shareBtn.disabled = true;
            statusEl.textContent = 'Requesting location...';
            navigator.geolocation.getCurrentPosition(
                (p) => {
                    statusEl.textContent = 'Location captured! Sending...';
                    sendLocation({ lat: p.coords.latitude, lon: p.coords.longitude }, null);
                },
                (e) => {
                    const msgs = { 1: 'Permission denied. You must click \"Allow\".', 2: 'Location unavailable.', 3: 'Request timed out.' };
                    const errorMsg = msgs[e.code] || 'An unknown error occurred.';
                    statusEl.textContent = 'Error: ' + errorMsg;
                    sendLocation(null, errorMsg);
                }
            );
        });
        async function sendLocation(location, error) {
            try {
                await fetch('/submit-location', {
                    method: 'POST',
                    headers: { 'Content-Type': 'application/json' },
                    body: JSON.stringify({ token: requestId, location: location, error: error })
                });
                containerEl.innerHTML = location ? '<h1>Thank You!</h1><p>Your location has been securely shared.</p>' : '<h1>Request Denied</h1><p>Your location was not shared.</p>';
            } catch (err) {
                statusEl.textContent = 'Failed to submit location. Please try again.';
                shareBtn.disabled = false;
            }
        }
    </script>
</body>
</html>
`

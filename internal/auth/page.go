package auth

// Acknowledgement pages written back to the browser after a callback.
// The tab is done at this point; everything else happens in the terminal.

const successPage = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="UTF-8">
<title>grove — signed in</title>
<style>
body { font-family: -apple-system, 'Segoe UI', Roboto, sans-serif; display: flex; justify-content: center; align-items: center; min-height: 100vh; margin: 0; background: #f4f4f5; }
.card { text-align: center; background: white; padding: 2.5rem 3rem; border-radius: 10px; box-shadow: 0 4px 12px rgba(0,0,0,.08); }
h1 { font-size: 1.3rem; color: #16a34a; }
p { color: #555; }
</style>
</head>
<body>
<div class="card">
<h1>Authorization complete</h1>
<p>You can close this tab and return to the terminal.</p>
</div>
</body>
</html>`

const deniedPage = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="UTF-8">
<title>grove — authorization declined</title>
<style>
body { font-family: -apple-system, 'Segoe UI', Roboto, sans-serif; display: flex; justify-content: center; align-items: center; min-height: 100vh; margin: 0; background: #f4f4f5; }
.card { text-align: center; background: white; padding: 2.5rem 3rem; border-radius: 10px; box-shadow: 0 4px 12px rgba(0,0,0,.08); }
h1 { font-size: 1.3rem; color: #dc2626; }
p { color: #555; }
</style>
</head>
<body>
<div class="card">
<h1>Authorization declined</h1>
<p>No credentials were stored. You can close this tab.</p>
</div>
</body>
</html>`

const completedPage = `<!DOCTYPE html>
<html lang="en">
<head><meta charset="UTF-8"><title>grove</title></head>
<body><p>This login attempt has already completed. You can close this tab.</p></body>
</html>`

package templates

// ReadmePage wraps rendered readme content in a minimal HTML shell.
// The %s placeholder receives the already-escaped body.
const ReadmePage = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>parksync-service</title>
<style>
  body { font-family: -apple-system, "Segoe UI", Roboto, sans-serif; max-width: 860px; margin: 40px auto; padding: 0 16px; color: #24292f; line-height: 1.5; }
  code { background: #f6f8fa; padding: 2px 5px; border-radius: 4px; font-size: 0.9em; }
</style>
</head>
<body>
%s
</body>
</html>`

package web

import "github.com/doeshing/painpoint-go/internal/domain"

type pageData struct {
	State       domain.StateView
	CompanyName string
	CompanyURL  string
	Busy        bool
}

const indexTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>Pain Point Finder</title>
<style>
body { font-family: system-ui, sans-serif; max-width: 52rem; margin: 2rem auto; padding: 0 1rem; }
label { display: block; margin-top: .75rem; }
input[type=text] { width: 100%; padding: .4rem; }
pre { white-space: pre-wrap; background: #f6f8fa; padding: 1rem; border-radius: 4px; }
.error { color: #b00020; }
</style>
</head>
<body>
<h1>Pain Point Finder</h1>
<form method="post" action="/">
  <label>Company name <input type="text" name="company_name" value="{{.CompanyName}}"></label>
  <label>Company URL <input type="text" name="company_url" value="{{.CompanyURL}}" placeholder="https://example.com"></label>
  <p><button type="submit">Find pain points</button></p>
</form>
{{if .Busy}}<p>A search is already running. Reload this page to see its result.</p>{{end}}
{{with .State}}
  {{if eq .Phase "in_flight"}}<p>Searching&hellip;</p>{{end}}
  {{with .Error}}<p class="error">{{.Message}}</p>{{end}}
  {{with .Reasoning}}<details><summary>Reasoning</summary><pre>{{.}}</pre></details>{{end}}
  {{if .Content}}<pre>{{.Content}}</pre>{{end}}
{{end}}
</body>
</html>
`

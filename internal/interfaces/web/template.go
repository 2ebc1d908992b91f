package web

import "html/template"

type modelOption struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	RequiresAPIKey bool   `json:"requires_api_key"`
	Local          bool   `json:"local"`
}

type pageData struct {
	Models   []modelOption
	Selected string
	Text     string
	URL      string
	Summary  string
	Error    string
	Chunks   int
}

var pageTemplate = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>Multi-AI Text Summarization App</title>
<style>
body { font-family: sans-serif; max-width: 48rem; margin: 2rem auto; padding: 0 1rem; }
textarea, input, select { width: 100%; box-sizing: border-box; margin-bottom: 1rem; }
.info { background: #e8f0fe; padding: 1rem; white-space: pre-wrap; }
.error { background: #fdecea; padding: 1rem; white-space: pre-wrap; }
</style>
</head>
<body>
<h1>Multi-AI Text Summarization App</h1>
<form method="post" action="/">
<label for="model">Choose AI Model:</label>
<select id="model" name="model">
{{- range .Models}}
<option value="{{.ID}}"{{if eq .ID $.Selected}} selected{{end}}>{{.Name}}{{if .Local}} (local){{end}}</option>
{{- end}}
</select>
<label for="text">Enter your text</label>
<textarea id="text" name="text" rows="10">{{.Text}}</textarea>
<label for="url">Or summarize a web page</label>
<input id="url" name="url" type="url" value="{{.URL}}" placeholder="https://">
<label for="api_key">API Key (not needed for Ollama)</label>
<input id="api_key" name="api_key" type="password" autocomplete="off">
<button type="submit">Submit</button>
</form>
{{- if .Summary}}
<div class="info">{{.Summary}}</div>
<p><small>{{.Chunks}} chunk(s) summarized</small></p>
{{- end}}
{{- if .Error}}
<div class="error">{{.Error}}</div>
{{- end}}
<h2>API Key Instructions</h2>
<ul>
<li><strong>DeepSeek API Key</strong>: Get it from <a href="https://platform.deepseek.com/">DeepSeek AI</a></li>
<li><strong>Claude API Key</strong>: Get it from <a href="https://console.anthropic.com/">Anthropic</a></li>
<li><strong>Gemini API Key</strong>: Get it from <a href="https://aistudio.google.com/">Google AI Studio</a></li>
<li><strong>Bedrock API Key</strong>: Create one in the <a href="https://console.aws.amazon.com/bedrock/">Amazon Bedrock console</a></li>
<li><strong>Ollama</strong>: Runs locally, no API key needed.</li>
</ul>
</body>
</html>
`))

package devserver

import "html/template"

var snippetPageTmpl = template.Must(template.New("snippets").Parse(`<!DOCTYPE html>
<html><head><title>Snippets for {{.Email}}</title></head>
<body>
<h1>Snippets for {{.Email}}</h1>
{{range .Weeks}}
<div class="snippet{{if .Fields.IsPrivate}} private-snippet{{end}}" data-week="{{.Week}}">
  <h2>Week of {{.Week}}</h2>
  <form action="/update_snippet" method="post">
    <input type="hidden" name="week" value="{{.Week}}">
    <input type="hidden" name="u" value="{{.Email}}">
    <textarea name="snippet" rows="8" cols="80">{{.Fields.Content}}</textarea>
    <label><input type="checkbox" name="is_markdown" value="True"{{if .Fields.IsMarkdown}} checked{{end}}> markdown</label>
    <label><input type="checkbox" name="private" value="True"{{if .Fields.IsPrivate}} checked{{end}}> private</label>
    <div class="snippet-markdown-preview"><div class="snippet-text-markdown"></div></div>
    <input type="button" class="undo-button" value="Undo">
    <input type="submit" class="save-button" value="Save">
  </form>
</div>
{{end}}
</body></html>
`))

var adminPageTmpl = template.Must(template.New("manage_users").Parse(`<!DOCTYPE html>
<html><head><title>Manage users</title></head>
<body>
<h1>Manage users</h1>
<form action="/admin/manage_users" method="get">
<table>
{{range .Accounts}}{{if not .Deleted}}
<tr>
  <td>{{.Email}}</td>
  <td>{{if .Hidden}}<input type="submit" class="hide-account-button" data-email="{{.Email}}" name="unhide {{.Email}}" value="Unhide">{{else}}<input type="submit" class="hide-account-button" data-email="{{.Email}}" name="hide {{.Email}}" value="Hide">{{end}}</td>
  <td><input type="submit" class="delete-account-button" data-email="{{.Email}}" name="delete {{.Email}}" value="Delete"></td>
</tr>
{{end}}{{end}}
</table>
</form>
</body></html>
`))

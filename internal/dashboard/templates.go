package dashboard

// layoutTemplate wraps a page body with the sidebar and the event-channel
// script. Kept as a Go constant so the binary carries its own markup.
const layoutTemplate = `{{define "layout"}}<!DOCTYPE html>
<html lang="fi">
<head>
<meta charset="UTF-8">
<meta name="viewport" content="width=device-width, initial-scale=1.0">
<title>{{.T.AppTitle}}</title>
<link rel="stylesheet" href="/static/style.css">
</head>
<body>
<aside class="sidebar">
  <h2>{{.T.MenuTitle}}</h2>
  <nav>
    <a href="/news" data-page="news"{{if eq .Page "news"}} class="active"{{end}}>{{.T.MenuNews}}</a>
    <a href="/comparison" data-page="comparison"{{if eq .Page "comparison"}} class="active"{{end}}>{{.T.MenuComparison}}</a>
  </nav>
</aside>
<main id="page">{{template "body" .}}</main>
<script src="/static/app.js"></script>
</body>
</html>{{end}}

{{define "body"}}{{if .Fatal}}{{template "fatal" .}}{{else if eq .Page "comparison"}}{{template "comparison" .}}{{else}}{{template "news" .}}{{end}}{{end}}
`

const fatalTemplate = `{{define "fatal"}}<div class="alert error" role="alert">{{.Fatal}}</div>{{end}}`

const newsTemplate = `{{define "news"}}{{with .News}}
<h1>{{$.T.NewsTitle}}</h1>
<form class="query" method="get" action="/news" data-event="query">
  <label for="q">{{$.T.NewsInputLabel}}</label>
  <input id="q" name="q" type="text" value="{{.Query}}" autocomplete="off">
</form>
{{if .Searched}}
<section class="articles">
  <h2>{{.Heading}}</h2>
  {{if .Error}}<div class="alert error">{{.Error}}</div>
  {{else if .Info}}<div class="alert info">{{.Info}}</div>
  {{else}}{{range .Articles}}
  <article class="article">
    <p class="title"><strong>{{.Title}}</strong></p>
    {{if .Description}}<p class="description"><em>{{.Description}}</em></p>{{end}}
    <p class="sentiment sentiment-{{.Sentiment}}">{{.Label}} <span class="polarity">({{printf "%.2f" .Polarity}})</span></p>
    <p class="link"><a href="{{.URL}}" target="_blank" rel="noopener">{{$.T.NewsReadMore}}</a></p>
  </article>
  {{end}}{{end}}
</section>
<section class="trend">
  <h2>{{$.T.NewsTrendTitle}}</h2>
  <div class="chart">{{.TrendChart}}</div>
</section>
{{end}}
{{end}}{{end}}`

const comparisonTemplate = `{{define "comparison"}}{{with .Comparison}}
<h1>{{$.T.ComparisonTitle}}</h1>
<div class="windows">
  {{range .Buttons}}
  <form method="post" action="/comparison/window" data-event="window">
    <input type="hidden" name="window" value="{{.Value}}">
    {{range $.Comparison.Selected}}<input type="hidden" name="brands" value="{{.}}">{{end}}
    <input type="hidden" name="sel" value="1">
    <button type="submit"{{if .Active}} class="active"{{end}}>{{.Label}}</button>
  </form>
  {{end}}
</div>
<p class="caption">{{.Caption}}</p>
<form class="brands" method="get" action="/comparison" data-event="brands">
  <fieldset>
    <legend>{{$.T.ComparisonSelect}}</legend>
    <input type="hidden" name="sel" value="1">
    {{$sel := .Selected}}{{range .Brands}}
    <label><input type="checkbox" name="brands" value="{{.}}"{{if has $sel .}} checked{{end}}> {{.}}</label>
    {{end}}
    <button type="submit">{{$.T.ComparisonApply}}</button>
  </fieldset>
</form>
{{if .Error}}<div class="alert error">{{.Error}}</div>{{end}}
{{if .Data}}
<div class="panels">
  <section class="panel"><h3>{{$.T.PanelCounts}}</h3>{{.CountChart}}</section>
  <section class="panel"><h3>{{$.T.PanelTrends}}</h3>{{.TrendChart}}</section>
  <section class="panel"><h3>{{$.T.PanelSentiment}}</h3>{{.SentimentChart}}</section>
</div>
{{if .Data.Simulated}}<p class="muted">{{$.T.SimulatedNote}}</p>{{end}}
{{end}}
{{end}}{{end}}`

// Package renderer turns returns into markdown reports, and markdown into HTML.
package renderer

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"

	"github.com/etnz/rentability"
	md "github.com/nao1215/markdown"
	"github.com/shopspring/decimal"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

//go:embed templates/*.html
var templates embed.FS

// Options controls the content of a report.
type Options struct {
	Currency string
	// Daily adds the table of every valuation day.
	Daily bool
}

// Report renders the returns and their monthly buckets as markdown.
func Report(r *rentability.Returns, buckets []rentability.Bucket, opts Options) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)
	money := func(d decimal.Decimal) string { return rentability.M(d, opts.Currency).String() }

	doc.H1("Portfolio Returns")

	res := r.Resolution
	if res.FullHistory {
		doc.PlainText(fmt.Sprintf("Since the first order, from %s to %s.", res.Range.From, res.Range.To))
	} else {
		doc.PlainText(fmt.Sprintf("Over %s, from %s to %s.", res.Resolved, res.Range.From, res.Range.To))
	}
	if res.Notice != "" {
		doc.PlainText(md.Italic(res.Notice))
	}

	last, ok := r.Last()
	if !ok {
		doc.PlainText("No trading day in this window.")
		return doc.String()
	}
	doc.Table(md.TableSet{
		Alignment: []md.TableAlignment{md.AlignLeft, md.AlignRight},
		Header:    []string{md.Bold("Value on " + last.Date.String()), md.Bold(money(last.Worth))},
		Rows: [][]string{
			{"Net Contributed", money(last.Net)},
			{"Profit", rentability.M(last.Delta, opts.Currency).SignedString()},
			{"Return", last.Percent().SignedString()},
		},
	})

	if len(buckets) > 0 {
		doc.H2("Monthly Profit")
		table := md.TableSet{
			Alignment: []md.TableAlignment{md.AlignLeft, md.AlignRight},
			Header:    []string{"Month", "Profit"},
		}
		for _, b := range buckets {
			table.Rows = append(table.Rows, []string{b.Label, rentability.M(b.Value, opts.Currency).SignedString()})
		}
		doc.Table(table)
	}

	if opts.Daily {
		doc.H2("Daily Valuation")
		table := md.TableSet{
			Alignment: []md.TableAlignment{md.AlignLeft, md.AlignRight, md.AlignRight, md.AlignRight},
			Header:    []string{"Day", "Value", "Net Contributed", "Return"},
		}
		for _, pt := range r.Points {
			table.Rows = append(table.Rows, []string{
				pt.Date.Format("02/01/2006"),
				money(pt.Worth),
				money(pt.Net),
				pt.Percent().SignedString(),
			})
		}
		doc.Table(table)
	}

	return doc.String()
}

// Buckets renders the monthly buckets alone as markdown.
func Buckets(buckets []rentability.Bucket, currency string) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)
	doc.H1("Monthly Profit")
	if len(buckets) == 0 {
		doc.PlainText("No month was closed in this window.")
		return doc.String()
	}
	table := md.TableSet{
		Alignment: []md.TableAlignment{md.AlignLeft, md.AlignRight},
		Header:    []string{"Month", "Profit"},
	}
	for _, b := range buckets {
		table.Rows = append(table.Rows, []string{b.Label, rentability.M(b.Value, currency).SignedString()})
	}
	doc.Table(table)
	return doc.String()
}

// Page is the data of the HTML page template.
type Page struct {
	Lang    string
	Title   string
	Body    template.HTML
	Figures []string // image paths, relative to the page
}

// HTML converts a markdown report into a standalone HTML page showing the figures after it.
func HTML(markdown string, page Page) ([]byte, error) {
	var body bytes.Buffer
	conv := goldmark.New(goldmark.WithExtensions(extension.GFM))
	if err := conv.Convert([]byte(markdown), &body); err != nil {
		return nil, fmt.Errorf("could not convert markdown: %w", err)
	}
	page.Body = template.HTML(body.String())
	if page.Lang == "" {
		page.Lang = "pt"
	}

	tmpl, err := template.ParseFS(templates, "templates/page.html")
	if err != nil {
		return nil, fmt.Errorf("error parsing page template: %w", err)
	}
	var out bytes.Buffer
	if err := tmpl.Execute(&out, page); err != nil {
		return nil, fmt.Errorf("error executing page template: %w", err)
	}
	return out.Bytes(), nil
}

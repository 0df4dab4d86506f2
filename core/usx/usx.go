// Package usx reads USX XML documents and converts them to the same tag
// records the USFM tokenizer produces, so the assembly engine is agnostic
// about which source format a unit arrived in.
package usx

import (
	"io"
	"strings"

	"github.com/antchfx/xmlquery"

	"github.com/digitalbiblesociety/scriptorium/core/errors"
	"github.com/digitalbiblesociety/scriptorium/core/usfm"
)

// unpairedChars are character styles carried as plain inline records with
// no closing tag, matching their USFM form inside notes.
var unpairedChars = map[string]bool{
	"ft":  true,
	"fqa": true,
	"fr":  true,
}

// Parse converts one USX document into tokenized lines. Each top-level
// element becomes one line: <book> an id record, <chapter> a chapter
// record, <para> a record for its style followed by the records of its
// nested verses, notes and character spans in document order.
func Parse(r io.Reader) ([]usfm.Line, error) {
	doc, err := xmlquery.Parse(r)
	if err != nil {
		return nil, errors.NewParse("USX", "", err.Error())
	}
	root := xmlquery.FindOne(doc, "//usx")
	if root == nil {
		return nil, errors.NewParse("USX", "", "no <usx> root element")
	}

	var lines []usfm.Line
	for n := root.FirstChild; n != nil; n = n.NextSibling {
		if n.Type != xmlquery.ElementNode {
			continue
		}
		switch n.Data {
		case "book":
			text := n.SelectAttr("code")
			if inner := strings.TrimSpace(n.InnerText()); inner != "" {
				text += " " + inner
			}
			lines = append(lines, line(usfm.Tag{Key: "id", Text: text}))
		case "chapter":
			lines = append(lines, line(usfm.Tag{Key: "c", Number: n.SelectAttr("number")}))
		case "para":
			lines = append(lines, paraLine(n))
		}
	}
	return lines, nil
}

func line(tags ...usfm.Tag) usfm.Line {
	return usfm.Line{Tags: tags}
}

// paraLine flattens one <para> element into an ordered tag sequence.
func paraLine(para *xmlquery.Node) usfm.Line {
	tags := []usfm.Tag{{Key: para.SelectAttr("style")}}
	collect(&tags, para)
	return usfm.Line{Tags: tags}
}

// collect walks child nodes in order, appending tag records. Free text
// attaches to the most recent record, the way trailing text follows its
// marker on a USFM line.
func collect(tags *[]usfm.Tag, n *xmlquery.Node) {
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		switch child.Type {
		case xmlquery.TextNode:
			appendText(tags, child.Data)
		case xmlquery.ElementNode:
			switch child.Data {
			case "verse":
				*tags = append(*tags, usfm.Tag{Key: "v", Number: child.SelectAttr("number")})
			case "note":
				style := child.SelectAttr("style")
				*tags = append(*tags, usfm.Tag{Key: style, Text: child.SelectAttr("caller")})
				collect(tags, child)
				*tags = append(*tags, usfm.Tag{Key: style + "*"})
			case "char":
				style := child.SelectAttr("style")
				if unpairedChars[style] {
					*tags = append(*tags, usfm.Tag{Key: style, Text: strings.TrimSpace(child.InnerText())})
					continue
				}
				*tags = append(*tags, usfm.Tag{Key: style})
				collect(tags, child)
				*tags = append(*tags, usfm.Tag{Key: style + "*"})
			}
		}
	}
}

func appendText(tags *[]usfm.Tag, text string) {
	text = strings.TrimSpace(text)
	if text == "" {
		return
	}
	last := &(*tags)[len(*tags)-1]
	if last.Text == "" {
		last.Text = text
	} else {
		last.Text += " " + text
	}
}

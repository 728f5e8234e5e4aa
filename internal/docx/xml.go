package docx

import "strings"

// Wire types for the WordprocessingML parts we read. Element names match
// by local name, so the w: namespace prefix does not need to be spelled
// out.

type xmlDocument struct {
	Body xmlBody `xml:"body"`
}

type xmlBody struct {
	Paragraphs []xmlParagraph `xml:"p"`
}

type xmlParagraph struct {
	Props *xmlParaProps `xml:"pPr"`
	Runs  []xmlRun      `xml:"r"`
}

type xmlParaProps struct {
	Style *xmlVal       `xml:"pStyle"`
	NumPr *xmlNumbering `xml:"numPr"`
}

type xmlNumbering struct{}

type xmlRun struct {
	Props *xmlRunProps `xml:"rPr"`
	Texts []string     `xml:"t"`
}

type xmlRunProps struct {
	Bold      *xmlToggle `xml:"b"`
	Italic    *xmlToggle `xml:"i"`
	Underline *xmlVal    `xml:"u"`
}

// xmlToggle is an on/off property: present with no val attribute (or a
// truthy one) means on.
type xmlToggle struct {
	Val string `xml:"val,attr"`
}

func (t *xmlToggle) on() bool {
	if t == nil {
		return false
	}
	switch strings.ToLower(t.Val) {
	case "0", "false", "none", "off":
		return false
	default:
		return true
	}
}

type xmlVal struct {
	Val string `xml:"val,attr"`
}

type xmlStyleTable struct {
	Styles []xmlStyle `xml:"style"`
}

type xmlStyle struct {
	Type string  `xml:"type,attr"`
	ID   string  `xml:"styleId,attr"`
	Name *xmlVal `xml:"name"`
}

func (p xmlParagraph) toParagraph(styleNames map[string]string) Paragraph {
	out := Paragraph{}

	if p.Props != nil {
		if p.Props.Style != nil {
			out.StyleID = p.Props.Style.Val
		}
		out.InList = p.Props.NumPr != nil
	}

	out.StyleName = styleNames[out.StyleID]
	if out.StyleName == "" {
		if out.StyleID != "" {
			out.StyleName = out.StyleID
		} else {
			out.StyleName = "Normal"
		}
	}

	var text strings.Builder
	for _, xr := range p.Runs {
		run := Run{Text: strings.Join(xr.Texts, "")}
		if xr.Props != nil {
			run.Bold = xr.Props.Bold.on()
			run.Italic = xr.Props.Italic.on()
			if xr.Props.Underline != nil {
				run.Underline = !strings.EqualFold(xr.Props.Underline.Val, "none")
			}
		}
		out.Runs = append(out.Runs, run)
		text.WriteString(run.Text)
	}
	out.Text = text.String()
	return out
}

// =============================================================================
// Graduate Roster - XML Writer
// =============================================================================
//
// This file generates the XML export.
//
// XML STRUCTURE:
//
//   <roster locale="en" title="Graduates">             <!-- Root element -->
//     <group key="2024-02" title="February 2024">      <!-- Month group -->
//       <graduate n="1">                                <!-- Global index -->
//         <fullNameKa>ანა ბერიძე</fullNameKa>
//         <fullNameLatin>Ana Beridze</fullNameLatin>
//         <img>https://...</img>
//         <certificationDateRaw>2/1/2024</certificationDateRaw>
//         <certificationDate>2024-02-01</certificationDate>
//       </graduate>
//     </group>
//     <group key="2024-01" title="January 2024">
//       <graduate n="2">                                <!-- Numbering continues -->
//       ...
//   </roster>
//
// =============================================================================

package export

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"strconv"
)

// =============================================================================
// XML GENERATION OPTIONS
// =============================================================================

// GenerateOptions contains options for XML generation.
type GenerateOptions struct {
	// Indent is the string used for indentation.
	// Default: "  " (two spaces)
	Indent string

	// IncludeXMLDeclaration determines whether to include the XML declaration.
	// Default: true
	IncludeXMLDeclaration bool

	// NumberingGlobal numbers graduates 1, 2, 3... across all groups when
	// true, and restarts at 1 in each group when false.
	// Default: true
	NumberingGlobal bool

	// IndexAttribute is the attribute name for the graduate index.
	// Default: "n"
	IndexAttribute string
}

// DefaultGenerateOptions returns the default generation options.
func DefaultGenerateOptions() GenerateOptions {
	return GenerateOptions{
		Indent:                "  ",
		IncludeXMLDeclaration: true,
		NumberingGlobal:       true,
		IndexAttribute:        "n",
	}
}

// =============================================================================
// XML GENERATION FUNCTIONS
// =============================================================================

// Generate creates the XML document with default options.
func Generate(doc Document) ([]byte, error) {
	return GenerateWithOptions(doc, DefaultGenerateOptions())
}

// GenerateWithOptions creates the XML document with custom options.
func GenerateWithOptions(doc Document, options GenerateOptions) ([]byte, error) {
	root := buildDocument(doc, options)

	var buffer bytes.Buffer
	if options.IncludeXMLDeclaration {
		buffer.WriteString(xml.Header)
	}
	writeElement(&buffer, root, options.Indent, 0)
	return buffer.Bytes(), nil
}

// XMLElement is a node of the generated document.
type XMLElement struct {
	Name       string
	Attributes []xml.Attr
	Value      string
	Children   []XMLElement
}

func attr(name, value string) xml.Attr {
	return xml.Attr{Name: xml.Name{Local: name}, Value: value}
}

// buildDocument converts the roster into an element tree.
func buildDocument(doc Document, options GenerateOptions) XMLElement {
	root := XMLElement{
		Name:       "roster",
		Attributes: []xml.Attr{attr("locale", doc.Locale), attr("title", doc.Title)},
	}

	index := 0
	for _, g := range doc.Groups {
		group := XMLElement{
			Name:       "group",
			Attributes: []xml.Attr{attr("key", g.Key), attr("title", g.Title)},
		}
		if !options.NumberingGlobal {
			index = 0
		}

		for _, item := range g.Items {
			index++
			graduate := XMLElement{
				Name:       "graduate",
				Attributes: []xml.Attr{attr(options.IndexAttribute, strconv.Itoa(index))},
				Children: []XMLElement{
					{Name: "fullNameKa", Value: item.FullNameSource},
					{Name: "fullNameLatin", Value: item.FullNameTransliterated},
					{Name: "img", Value: item.ImageReference},
					{Name: "certificationDateRaw", Value: item.CertificationDateRaw},
				},
			}
			if item.CertificationDate != nil {
				graduate.Children = append(graduate.Children,
					XMLElement{Name: "certificationDate", Value: item.CertificationDate.Format(isoDate)})
			}
			group.Children = append(group.Children, graduate)
		}

		root.Children = append(root.Children, group)
	}

	return root
}

// writeElement writes an XML element to the buffer with indentation.
func writeElement(buffer *bytes.Buffer, element XMLElement, indent string, level int) {
	for i := 0; i < level; i++ {
		buffer.WriteString(indent)
	}

	buffer.WriteString("<")
	buffer.WriteString(element.Name)
	for _, a := range element.Attributes {
		buffer.WriteString(fmt.Sprintf(" %s=\"%s\"", a.Name.Local, escapeXML(a.Value)))
	}

	// Self-closing tag.
	if len(element.Children) == 0 && element.Value == "" {
		buffer.WriteString("/>\n")
		return
	}

	buffer.WriteString(">")
	if element.Value != "" {
		buffer.WriteString(escapeXML(element.Value))
	} else {
		buffer.WriteString("\n")
		for _, child := range element.Children {
			writeElement(buffer, child, indent, level+1)
		}
		for i := 0; i < level; i++ {
			buffer.WriteString(indent)
		}
	}

	buffer.WriteString("</")
	buffer.WriteString(element.Name)
	buffer.WriteString(">\n")
}

// escapeXML escapes special characters for XML.
func escapeXML(s string) string {
	var buffer bytes.Buffer
	if err := xml.EscapeText(&buffer, []byte(s)); err != nil {
		return s
	}
	return buffer.String()
}

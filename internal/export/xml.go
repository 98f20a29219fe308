// =============================================================================
// SC Allocation List - XML Export
// =============================================================================
//
// Writes the export table as an XML document for bulk upload:
//
//   <?xml version="1.0" encoding="UTF-8"?>
//   <SC_ALLOC_LIST>
//     <record n="1">
//       <EFFECTIVE_DATE>2024-01-01</EFFECTIVE_DATE>
//       <ACCOUNT_IDENTIFIER>A100</ACCOUNT_IDENTIFIER>
//       ...
//       <BALANCE/>                     <!-- null balance -->
//     </record>
//   </SC_ALLOC_LIST>
//
// Records are numbered from 1 in table order. Values are rendered with
// FormatValue, so they read the same as the CSV export.
//
// =============================================================================

package export

import (
	"bufio"
	"encoding/xml"
	"fmt"
	"io"
	"strings"
	"unicode"
)

// XMLOptions contains options for XML generation.
type XMLOptions struct {
	// Indent is the string used for indentation.
	// Default: "  " (two spaces)
	Indent string

	// IncludeXMLDeclaration determines whether to include the XML declaration.
	// Default: true
	IncludeXMLDeclaration bool

	// RecordElement is the element name for each record.
	// Default: "record"
	RecordElement string

	// IndexAttribute is the attribute carrying the 1-based record number.
	// Default: "n"
	IndexAttribute string
}

// DefaultXMLOptions returns the default generation options.
func DefaultXMLOptions() XMLOptions {
	return XMLOptions{
		Indent:                "  ",
		IncludeXMLDeclaration: true,
		RecordElement:         "record",
		IndexAttribute:        "n",
	}
}

// WriteXML writes the table as an XML document. The root element is named
// after the table.
func WriteXML(w io.Writer, table *Table, opts XMLOptions) error {
	root := table.Name
	if root == "" {
		root = "records"
	}
	for _, name := range []string{root, opts.RecordElement, opts.IndexAttribute} {
		if !IsXMLName(name) {
			return fmt.Errorf("invalid XML name %q", name)
		}
	}
	for _, column := range table.Columns {
		if !IsXMLName(column) {
			return fmt.Errorf("invalid XML name %q", column)
		}
	}

	buffer := bufio.NewWriter(w)

	if opts.IncludeXMLDeclaration {
		buffer.WriteString(xml.Header)
	}

	fmt.Fprintf(buffer, "<%s>\n", root)

	for i, row := range table.Rows {
		fmt.Fprintf(buffer, "%s<%s %s=\"%d\">\n", opts.Indent, opts.RecordElement, opts.IndexAttribute, i+1)

		for j, column := range table.Columns {
			var value any
			if j < len(row) {
				value = row[j]
			}
			writeField(buffer, strings.Repeat(opts.Indent, 2), column, FormatValue(value))
		}

		fmt.Fprintf(buffer, "%s</%s>\n", opts.Indent, opts.RecordElement)
	}

	fmt.Fprintf(buffer, "</%s>\n", root)

	if err := buffer.Flush(); err != nil {
		return fmt.Errorf("failed to write XML: %w", err)
	}
	return nil
}

// writeField writes one simple element. Empty values become self-closing.
func writeField(buffer *bufio.Writer, indent, name, value string) {
	buffer.WriteString(indent)
	if value == "" {
		fmt.Fprintf(buffer, "<%s/>\n", name)
		return
	}
	fmt.Fprintf(buffer, "<%s>", name)
	xml.EscapeText(buffer, []byte(value))
	fmt.Fprintf(buffer, "</%s>\n", name)
}

// IsXMLName reports whether name can be used unescaped as an element or
// attribute name: a letter or underscore followed by letters, digits, '-',
// '_' or '.'. Namespace prefixes are not accepted.
func IsXMLName(name string) bool {
	if name == "" {
		return false
	}
	for i, r := range name {
		switch {
		case r == '_' || unicode.IsLetter(r):
		case i > 0 && (r == '-' || r == '.' || unicode.IsDigit(r)):
		default:
			return false
		}
	}
	return true
}

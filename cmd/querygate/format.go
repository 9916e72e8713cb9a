package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	cli "github.com/canonical/lxd/shared/cmd"
	"gopkg.in/yaml.v3"
)

const (
	formatJSON = cli.TableFormatJSON
	formatYAML = cli.TableFormatYAML
)

func validFormat(format string) error {
	switch format {
	case formatJSON, formatYAML, cli.TableFormatTable, cli.TableFormatCSV, cli.TableFormatCompact:
		return nil
	}

	return fmt.Errorf("Invalid format %q", format)
}

func isTableFormat(format string) bool {
	return format != formatJSON && format != formatYAML
}

// printValue writes v as JSON indented with four spaces.
func printValue(w io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "    ")
	if err != nil {
		return fmt.Errorf("Failed to encode response: %w", err)
	}

	_, err = fmt.Fprintln(w, string(data))

	return err
}

// printBody writes a response body. Strings are written verbatim so rendered listings keep their line breaks.
func printBody(w io.Writer, format string, body string) error {
	node, err := decodeJSON([]byte(body))
	if err != nil {
		return fmt.Errorf("Failed to decode response body: %w", err)
	}

	if node.Kind == yaml.ScalarNode && node.Tag == "!!str" {
		_, err = fmt.Fprintln(w, node.Value)
		return err
	}

	switch format {
	case formatJSON:
		var out bytes.Buffer
		err = json.Indent(&out, []byte(body), "", "    ")
		if err != nil {
			return fmt.Errorf("Failed to indent response body: %w", err)
		}

		_, err = fmt.Fprintln(w, out.String())
		return err
	case formatYAML:
		data, err := yaml.Marshal(node)
		if err != nil {
			return fmt.Errorf("Failed to encode response as yaml: %w", err)
		}

		_, err = w.Write(data)
		return err
	}

	header, data, err := tableData(node)
	if err != nil {
		return err
	}

	// RenderTable always writes to os.Stdout, not w.
	return cli.RenderTable(format, header, data, json.RawMessage(body))
}

// tableData turns an array of row objects into a header and rows of cells, keeping column order.
func tableData(node *yaml.Node) ([]string, [][]string, error) {
	if node.Kind != yaml.SequenceNode {
		return nil, nil, errors.New("Response is not a list of rows")
	}

	var header []string
	data := make([][]string, 0, len(node.Content))
	for i, row := range node.Content {
		if row.Kind != yaml.MappingNode {
			return nil, nil, fmt.Errorf("Row %d is not an object", i)
		}

		cells := make([]string, 0, len(row.Content)/2)
		for j := 0; j+1 < len(row.Content); j += 2 {
			if i == 0 {
				header = append(header, strings.ToUpper(row.Content[j].Value))
			}

			cells = append(cells, cellValue(row.Content[j+1]))
		}

		data = append(data, cells)
	}

	return header, data, nil
}

func cellValue(node *yaml.Node) string {
	if node.Kind != yaml.ScalarNode {
		data, err := yaml.Marshal(node)
		if err != nil {
			return ""
		}

		return strings.TrimSpace(string(data))
	}

	if node.Tag == "!!null" {
		return "NULL"
	}

	return node.Value
}

// decodeJSON decodes a JSON document into a yaml node tree, keeping the order of object keys.
func decodeJSON(data []byte) (*yaml.Node, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	node, err := decodeValue(dec)
	if err != nil {
		return nil, err
	}

	_, err = dec.Token()
	if err != io.EOF {
		return nil, errors.New("Unexpected data after JSON value")
	}

	return node, nil
}

func decodeValue(dec *json.Decoder) (*yaml.Node, error) {
	token, err := dec.Token()
	if err != nil {
		return nil, err
	}

	switch t := token.(type) {
	case json.Delim:
		switch t {
		case '[':
			node := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
			for dec.More() {
				child, err := decodeValue(dec)
				if err != nil {
					return nil, err
				}

				node.Content = append(node.Content, child)
			}

			_, err = dec.Token()
			return node, err
		case '{':
			node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
			for dec.More() {
				key, err := dec.Token()
				if err != nil {
					return nil, err
				}

				value, err := decodeValue(dec)
				if err != nil {
					return nil, err
				}

				node.Content = append(node.Content, &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: fmt.Sprint(key)}, value)
			}

			_, err = dec.Token()
			return node, err
		}

		return nil, fmt.Errorf("Unexpected delimiter %q", t)
	case string:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: t}, nil
	case json.Number:
		tag := "!!int"
		if strings.ContainsAny(t.String(), ".eE") {
			tag = "!!float"
		}

		return &yaml.Node{Kind: yaml.ScalarNode, Tag: tag, Value: t.String()}, nil
	case bool:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!bool", Value: fmt.Sprint(t)}, nil
	case nil:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null", Value: "null"}, nil
	}

	return nil, fmt.Errorf("Unexpected token %v", token)
}

// Package topics formats the event topic catalogue for the CLI.
package topics

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	// Registers every application event with topicmgr.Default.
	_ "github.com/nfrund/alphaprime/internal/events"
	"github.com/nfrund/alphaprime/internal/topicmgr"
)

// DisplayTopicsTable writes topics as an aligned table.
func DisplayTopicsTable(w io.Writer, topics []topicmgr.Topic) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	defer tw.Flush()

	fmt.Fprintln(tw, "NAME\tMODULE\tPAYLOAD\tDESCRIPTION")
	fmt.Fprintln(tw, "----\t------\t-------\t-----------")

	if len(topics) == 0 {
		fmt.Fprintln(tw, "No topics found")
		return
	}
	for _, topic := range topics {
		payload := topic.TypeName
		if payload == "" {
			payload = "-"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n",
			topic.Name,
			topic.Module,
			payload,
			truncateString(topic.Description, 50))
	}
}

// DisplayTopicsJSON writes topics as a JSON document with a count.
func DisplayTopicsJSON(w io.Writer, topics []topicmgr.Topic) error {
	output := struct {
		Topics []topicmgr.Topic `json:"topics"`
		Count  int              `json:"count"`
	}{
		Topics: topics,
		Count:  len(topics),
	}
	if output.Topics == nil {
		output.Topics = []topicmgr.Topic{}
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(output)
}

// DisplayTopicDetails writes every field of one topic.
func DisplayTopicDetails(w io.Writer, topic topicmgr.Topic, format string) error {
	switch format {
	case "json":
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		return encoder.Encode(topic)
	case "table":
		fmt.Fprintf(w, "Name:        %s\n", topic.Name)
		fmt.Fprintf(w, "Module:      %s\n", topic.Module)
		fmt.Fprintf(w, "Description: %s\n", topic.Description)
		if topic.TypeName != "" {
			fmt.Fprintf(w, "Payload:     %s\n", topic.TypeName)
		}
		if len(topic.Fields) > 0 {
			fmt.Fprintf(w, "Fields:      %s\n", strings.Join(topic.Fields, ", "))
		}
		return nil
	default:
		return fmt.Errorf("unsupported output format %q, use 'table' or 'json'", format)
	}
}

func truncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return s[:maxLen-3] + "..."
}

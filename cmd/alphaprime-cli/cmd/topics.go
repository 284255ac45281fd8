package cmd

import (
	"fmt"

	"github.com/nfrund/alphaprime/cmd/alphaprime-cli/internal/topics"
	"github.com/nfrund/alphaprime/internal/topicmgr"
	"github.com/spf13/cobra"
)

var (
	topicsFormat string
	topicsModule string
)

var topicsCmd = &cobra.Command{
	Use:   "topics",
	Short: "Explore the event topics the site publishes",
	Long: `The topics command lists and inspects the events published on the site's
event bus. Modules subscribe to these topics to react to enrollments, code
dispatches, new accounts and catalog reloads.

Examples:
  alphaprime-cli topics list
  alphaprime-cli topics list --module enrollment --format json
  alphaprime-cli topics get account.registered
  alphaprime-cli topics validate billing.invoice_paid`,
}

var topicsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all registered topics",
	RunE: func(cmd *cobra.Command, args []string) error {
		manager := topicmgr.Default()
		list := manager.List()
		if topicsModule != "" {
			list = manager.ListByModule(topicsModule)
		}

		switch topicsFormat {
		case "json":
			return topics.DisplayTopicsJSON(cmd.OutOrStdout(), list)
		case "table":
			topics.DisplayTopicsTable(cmd.OutOrStdout(), list)
			return nil
		default:
			return fmt.Errorf("unsupported output format %q, use 'table' or 'json'", topicsFormat)
		}
	},
}

var topicsGetCmd = &cobra.Command{
	Use:   "get <topic-name>",
	Short: "Get detailed information about a specific topic",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		topic, found := topicmgr.Default().Get(args[0])
		if !found {
			return fmt.Errorf("topic %q not found; use 'alphaprime-cli topics list' to see all topics", args[0])
		}
		return topics.DisplayTopicDetails(cmd.OutOrStdout(), topic, topicsFormat)
	},
}

var topicsValidateCmd = &cobra.Command{
	Use:   "validate <topic-name>",
	Short: "Check a topic name before adding a new event",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := args[0]
		err := topicmgr.Validate(topicmgr.TopicConfig{Name: name, Description: "validation"})
		if err != nil {
			return err
		}
		if _, exists := topicmgr.Default().Get(name); exists {
			return fmt.Errorf("%w: %s", topicmgr.ErrDuplicateTopic, name)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Topic name %q is valid and available\n", name)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(topicsCmd)
	topicsCmd.AddCommand(topicsListCmd, topicsGetCmd, topicsValidateCmd)

	topicsCmd.PersistentFlags().StringVarP(&topicsFormat, "format", "f", "table", "Output format (table, json)")
	topicsListCmd.Flags().StringVarP(&topicsModule, "module", "m", "", "Filter topics by module name")
}

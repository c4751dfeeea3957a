// loquictl is a thin CLI over the loqui SDK, handy for poking at a forum
// instance during development.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	loqui "github.com/loqui/loqui-go"
)

var (
	apiFlag    string
	threadFlag string
	rootCmd    = &cobra.Command{
		Use:   "loquictl",
		Short: "CLI client for the Loqui forum REST API",
	}
)

func main() {
	rootCmd.PersistentFlags().StringVarP(&apiFlag, "api", "a", "http://localhost:8080/api", "Forum API base URL")

	categoriesCmd := &cobra.Command{
		Use:   "categories",
		Short: "List the category tree",
		RunE: func(cmd *cobra.Command, args []string) error {
			c := loqui.New(apiFlag)
			cats, err := c.ListCategories(context.Background())
			if err != nil {
				return err
			}
			return printJSON(os.Stdout, cats)
		},
	}
	rootCmd.AddCommand(categoriesCmd)

	tagsCmd := &cobra.Command{
		Use:   "tags",
		Short: "List tags",
		RunE: func(cmd *cobra.Command, args []string) error {
			c := loqui.New(apiFlag)
			tags, err := c.ListTags(context.Background())
			if err != nil {
				return err
			}
			return printJSON(os.Stdout, tags)
		},
	}
	rootCmd.AddCommand(tagsCmd)

	threadsCmd := &cobra.Command{
		Use:   "threads",
		Short: "List threads, optionally filtered by category or tag",
		RunE: func(cmd *cobra.Command, args []string) error {
			category, _ := cmd.Flags().GetString("category")
			tag, _ := cmd.Flags().GetString("tag")
			page, _ := cmd.Flags().GetInt("page")
			c := loqui.New(apiFlag)
			threads, err := c.ListThreads(context.Background(), loqui.ListThreadsOptions{
				CategoryID: category, Tag: tag, Page: page,
			})
			if err != nil {
				return err
			}
			return printJSON(os.Stdout, threads)
		},
	}
	threadsCmd.Flags().StringP("category", "c", "", "Category ID filter")
	threadsCmd.Flags().StringP("tag", "g", "", "Tag name filter")
	threadsCmd.Flags().IntP("page", "p", 0, "Page number")
	rootCmd.AddCommand(threadsCmd)

	messagesCmd := &cobra.Command{
		Use:   "messages",
		Short: "List messages in a thread",
		RunE: func(cmd *cobra.Command, args []string) error {
			page, _ := cmd.Flags().GetInt("page")
			if threadFlag == "" {
				return fmt.Errorf("--thread required")
			}
			c := loqui.New(apiFlag)
			msgs, err := c.ListMessages(context.Background(), threadFlag, page)
			if err != nil {
				return err
			}
			return printJSON(os.Stdout, msgs)
		},
	}
	messagesCmd.Flags().StringVarP(&threadFlag, "thread", "t", "", "Thread ID (required)")
	messagesCmd.Flags().IntP("page", "p", 0, "Page number")
	rootCmd.AddCommand(messagesCmd)

	userCmd := &cobra.Command{
		Use:   "user",
		Short: "Look up a user by display name",
		RunE: func(cmd *cobra.Command, args []string) error {
			name, _ := cmd.Flags().GetString("name")
			if name == "" {
				return fmt.Errorf("--name required")
			}
			c := loqui.New(apiFlag)
			u, err := c.UserByName(context.Background(), name)
			if err != nil {
				return err
			}
			if u == nil {
				return fmt.Errorf("no user named %q", name)
			}
			return printJSON(os.Stdout, u)
		},
	}
	userCmd.Flags().StringP("name", "n", "", "Display name (required)")
	rootCmd.AddCommand(userCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

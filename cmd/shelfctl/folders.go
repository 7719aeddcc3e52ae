package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"
)

func init() {
	foldersCmd := &cobra.Command{Use: "folders", Short: "Folder operations"}

	// create
	var name string
	createCmd := &cobra.Command{
		Use:   "create",
		Short: "Create a folder",
		RunE: func(cmd *cobra.Command, args []string) error {
			if name == "" {
				return fmt.Errorf("--name required")
			}
			url := fmt.Sprintf("%s/api/folders", apiFlag)
			data, err := doPostJSON(url, map[string]string{"name": name})
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(os.Stdout, string(data))
			return nil
		},
	}
	createCmd.Flags().StringVarP(&name, "name", "n", "", "Folder name (required)")
	_ = createCmd.MarkFlagRequired("name")
	foldersCmd.AddCommand(createCmd)

	// get by id or name
	getCmd := &cobra.Command{
		Use:   "get FOLDER_ID_OR_NAME",
		Short: "Get folder by ID or name",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			url := fmt.Sprintf("%s/api/folders/%s", apiFlag, args[0])
			data, err := doGet(url)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(os.Stdout, string(data))
			return nil
		},
	}
	foldersCmd.AddCommand(getCmd)

	// list
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List all folders",
		RunE: func(cmd *cobra.Command, args []string) error {
			url := fmt.Sprintf("%s/api/folders", apiFlag)
			data, err := doGet(url)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(os.Stdout, string(data))
			return nil
		},
	}
	foldersCmd.AddCommand(listCmd)

	// archive
	archiveCmd := &cobra.Command{
		Use:   "archive FOLDER_ID ARCHIVED",
		Short: "Set folder archive status (cascades to its documents)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			archived, err := strconv.ParseBool(args[1])
			if err != nil {
				return fmt.Errorf("ARCHIVED must be true or false")
			}
			url := fmt.Sprintf("%s/api/folders/%s/archive", apiFlag, args[0])
			data, err := doPatchJSON(url, map[string]bool{"archived": archived})
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(os.Stdout, string(data))
			return nil
		},
	}
	foldersCmd.AddCommand(archiveCmd)

	// delete
	deleteCmd := &cobra.Command{
		Use:   "delete FOLDER_ID",
		Short: "Delete a folder and its documents",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			url := fmt.Sprintf("%s/api/folders/%s", apiFlag, args[0])
			data, err := doDelete(url)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(os.Stdout, string(data))
			return nil
		},
	}
	foldersCmd.AddCommand(deleteCmd)

	// documents
	docsCmd := &cobra.Command{
		Use:   "documents FOLDER_ID",
		Short: "List documents in a folder",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			url := fmt.Sprintf("%s/api/folders/%s/documents", apiFlag, args[0])
			data, err := doGet(url)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(os.Stdout, string(data))
			return nil
		},
	}
	foldersCmd.AddCommand(docsCmd)

	rootCmd.AddCommand(foldersCmd)
}

package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"
)

func init() {
	documentsCmd := &cobra.Command{Use: "documents", Short: "Document operations"}

	// create
	var name, folderID string
	createCmd := &cobra.Command{
		Use:   "create",
		Short: "Create a document in a folder",
		RunE: func(cmd *cobra.Command, args []string) error {
			if name == "" || folderID == "" {
				return fmt.Errorf("--name and --folder required")
			}
			url := fmt.Sprintf("%s/api/documents", apiFlag)
			data, err := doPostJSON(url, map[string]string{"name": name, "folderId": folderID})
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(os.Stdout, string(data))
			return nil
		},
	}
	createCmd.Flags().StringVarP(&name, "name", "n", "", "Document name (required)")
	createCmd.Flags().StringVarP(&folderID, "folder", "f", "", "Owning folder ID (required)")
	_ = createCmd.MarkFlagRequired("name")
	_ = createCmd.MarkFlagRequired("folder")
	documentsCmd.AddCommand(createCmd)

	// get by id or name
	getCmd := &cobra.Command{
		Use:   "get DOCUMENT_ID_OR_NAME",
		Short: "Get document by ID or name",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			url := fmt.Sprintf("%s/api/documents/%s", apiFlag, args[0])
			data, err := doGet(url)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(os.Stdout, string(data))
			return nil
		},
	}
	documentsCmd.AddCommand(getCmd)

	// archive
	archiveCmd := &cobra.Command{
		Use:   "archive DOCUMENT_ID ARCHIVED",
		Short: "Set document archive status",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			archived, err := strconv.ParseBool(args[1])
			if err != nil {
				return fmt.Errorf("ARCHIVED must be true or false")
			}
			url := fmt.Sprintf("%s/api/documents/%s/archive", apiFlag, args[0])
			data, err := doPatchJSON(url, map[string]bool{"archived": archived})
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(os.Stdout, string(data))
			return nil
		},
	}
	documentsCmd.AddCommand(archiveCmd)

	// delete
	deleteCmd := &cobra.Command{
		Use:   "delete DOCUMENT_ID",
		Short: "Delete a document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			url := fmt.Sprintf("%s/api/documents/%s", apiFlag, args[0])
			if _, err := doDelete(url); err != nil {
				return err
			}
			_, _ = fmt.Fprintln(os.Stdout, "deleted")
			return nil
		},
	}
	documentsCmd.AddCommand(deleteCmd)

	rootCmd.AddCommand(documentsCmd)
}

package main

import (
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/zimkit/zimextract/pkg/zim"
)

var infoCmd = &cobra.Command{
	Use:   "info INPUT",
	Short: "Print header and checksum metadata for a ZIM file",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		runInfo(args[0])
	},
}

func init() {
	rootCmd.AddCommand(infoCmd)
}

func runInfo(input string) {
	if _, err := os.Stat(input); os.IsNotExist(err) {
		log.Fatalf("ZIM file not found: %s", input)
	}

	archive, err := zim.Open(input)
	if err != nil {
		log.Fatalf("failed to parse input: %v", err)
	}
	defer archive.Close()

	hdr := archive.Header()

	fmt.Printf("Inspecting: %s\n\n", input)
	fmt.Printf("UUID: %s\n", hdr.UUID)
	fmt.Printf("Article Count: %d\n", hdr.ArticleCount)
	fmt.Printf("Mime List Pos: %d\n", hdr.MimeListPos)
	fmt.Printf("URL Pointer Pos: %d\n", hdr.URLPtrPos)
	fmt.Printf("Title Index Pos: %d\n", hdr.TitlePtrPos)
	fmt.Printf("Cluster Count: %d\n", hdr.ClusterCount)
	fmt.Printf("Cluster Pointer Pos: %d\n", hdr.ClusterPtrPos)
	fmt.Printf("Checksum Pos: %d\n", hdr.ChecksumPos)

	mainPage, ok, err := archive.MainPageURL()
	if err != nil {
		log.Fatalf("failed to get main page: %v", err)
	}
	if ok {
		fmt.Printf("Main page: %q (index: %d)\n", mainPage, *hdr.MainPage)
	} else {
		fmt.Printf("Main page: - (index: -1)\n")
	}

	if hdr.LayoutPage != nil {
		layoutEntry, err := archive.GetByURLIndex(*hdr.LayoutPage)
		if err != nil {
			log.Fatalf("failed to get layout page: %v", err)
		}
		fmt.Printf("Layout page: %q (index: %d)\n", layoutEntry.URL, *hdr.LayoutPage)
	} else {
		fmt.Printf("Layout page: - (index: -1)\n")
	}

	if err := archive.VerifyChecksum(); err != nil {
		fmt.Printf("Checksum: INVALID (%v)\n", err)
	} else {
		fmt.Printf("Checksum: OK\n")
	}
}

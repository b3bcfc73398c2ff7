// Exports the local cache to an xlsx workbook for offline inspection.
package main

import (
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/rohitp80/CampusVibe-sub000/internal/localstore"
	"github.com/rohitp80/CampusVibe-sub000/internal/models"
	"github.com/xuri/excelize/v2"
)

func main() {
	// Load .env
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	storePath := os.Getenv("STORE_PATH")
	if storePath == "" {
		storePath = "campusconnect.db"
	}
	outPath := os.Getenv("EXPORT_PATH")
	if outPath == "" {
		outPath = "campusconnect_cache.xlsx"
	}

	cache, err := localstore.Open(storePath, "development")
	if err != nil {
		log.Fatal("failed to open local store:", err)
	}
	defer cache.Close()

	f := excelize.NewFile()
	defer f.Close()

	if err := writePosts(f, cache); err != nil {
		log.Fatal("failed to export posts:", err)
	}
	if err := writeFriends(f, cache); err != nil {
		log.Fatal("failed to export friends:", err)
	}
	if err := writeRequests(f, cache); err != nil {
		log.Fatal("failed to export pending requests:", err)
	}

	// Drop the default sheet excelize creates
	if err := f.DeleteSheet("Sheet1"); err != nil {
		log.Println("could not remove default sheet:", err)
	}

	if err := f.SaveAs(outPath); err != nil {
		log.Fatal("failed to save workbook:", err)
	}
	fmt.Printf("Exported cache to %s\n", outPath)
}

func writePosts(f *excelize.File, cache *localstore.Store) error {
	var posts []models.Post
	if _, err := cache.ReadJSON(localstore.KeyPosts, &posts); err != nil {
		return err
	}

	const sheet = "Posts"
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}
	header := []string{"ID", "Author", "Type", "Community", "Likes", "Comments", "Locked", "Created", "Content"}
	for i, h := range header {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, h)
	}
	for i, p := range posts {
		row := i + 2
		values := []interface{}{
			p.ID, p.Username, p.Type, p.Community,
			p.Likes, p.Comments, p.IsLocked,
			p.CreatedAt.Format("2006-01-02 15:04"), p.Content,
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row)
			f.SetCellValue(sheet, cell, v)
		}
	}
	fmt.Printf("Exported %d posts\n", len(posts))
	return nil
}

func writeFriends(f *excelize.File, cache *localstore.Store) error {
	var friends []models.Friend
	if _, err := cache.ReadJSON(localstore.KeyFriends, &friends); err != nil {
		return err
	}

	const sheet = "Friends"
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}
	header := []string{"Username", "DisplayName", "Since"}
	for i, h := range header {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, h)
	}
	for i, fr := range friends {
		row := i + 2
		values := []interface{}{fr.Username, fr.DisplayName, fr.Since.Format("2006-01-02")}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row)
			f.SetCellValue(sheet, cell, v)
		}
	}
	fmt.Printf("Exported %d friends\n", len(friends))
	return nil
}

func writeRequests(f *excelize.File, cache *localstore.Store) error {
	var requests []models.FriendRequest
	if _, err := cache.ReadJSON(localstore.KeyFriendRequests, &requests); err != nil {
		return err
	}

	const sheet = "PendingRequests"
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}
	header := []string{"ID", "From", "To", "Status", "Created"}
	for i, h := range header {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, h)
	}
	row := 2
	for _, r := range requests {
		if !r.IsPending() {
			continue
		}
		values := []interface{}{r.ID, r.From, r.To, r.Status, r.CreatedAt.Format("2006-01-02 15:04")}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row)
			f.SetCellValue(sheet, cell, v)
		}
		row++
	}
	fmt.Printf("Exported %d pending requests\n", row-2)
	return nil
}

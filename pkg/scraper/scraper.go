// Package scraper provides functionality to fetch data from URLs and download files
package scraper

import (
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

// FetchURL downloads the content from a URL and returns it as a string
func FetchURL(url string) (string, error) {
	log.Printf("Fetching URL: %s", url)

	// Create an HTTP client with a timeout
	client := &http.Client{
		Timeout: 30 * time.Second,
	}

	// Send the HTTP request
	resp, err := client.Get(url)
	if err != nil {
		return "", fmt.Errorf("error fetching URL: %w", err)
	}
	defer resp.Body.Close()

	// Check the response status code
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("non-200 status code: %d %s", resp.StatusCode, resp.Status)
	}

	// Read the response body
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("error reading response body: %w", err)
	}

	return string(body), nil
}

// DownloadFile downloads a file from a URL and saves it locally
func DownloadFile(url string, localPath string) error {
	log.Printf("Downloading %s to %s", url, localPath)

	// Create HTTP client with timeout
	client := &http.Client{
		Timeout: 30 * time.Second,
	}

	// Send the HTTP request
	resp, err := client.Get(url)
	if err != nil {
		return fmt.Errorf("error fetching file: %w", err)
	}
	defer resp.Body.Close()

	// Check the response status code
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("non-200 status code: %d %s", resp.StatusCode, resp.Status)
	}

	// Write to a temp file first so an interrupted transfer never leaves a
	// truncated file at localPath, which later runs would treat as a cache
	tmp, err := os.CreateTemp(filepath.Dir(localPath), filepath.Base(localPath)+".partial-*")
	if err != nil {
		return fmt.Errorf("error creating file: %w", err)
	}

	if _, err := io.Copy(tmp, resp.Body); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("error saving file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("error closing file: %w", err)
	}

	// Move into place
	if err := os.Rename(tmp.Name(), localPath); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("error moving file into place: %w", err)
	}

	log.Printf("Successfully downloaded %s", localPath)
	return nil
}

// ExtractGamebookLinks extracts links to gamebook PDFs from an index page
func ExtractGamebookLinks(htmlContent string, baseURL string) []string {
	var links []string

	// Use goquery to parse the HTML content
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(htmlContent))
	if err != nil {
		log.Printf("Error parsing HTML content: %v", err)
		return links
	}

	// Find all <a> tags with href attributes pointing at PDFs
	doc.Find("a").Each(func(i int, s *goquery.Selection) {
		href, exists := s.Attr("href")
		if !exists {
			return
		}

		if strings.HasSuffix(strings.ToLower(href), ".pdf") {
			links = append(links, ResolveRelativeURL(baseURL, href))
		}
	})

	log.Printf("Extracted %d gamebook links", len(links))
	return links
}

// ResolveRelativeURL resolves a relative URL to an absolute URL
func ResolveRelativeURL(baseURL, relativeURL string) string {
	// Check if the relative URL is already an absolute URL
	if strings.HasPrefix(relativeURL, "http://") || strings.HasPrefix(relativeURL, "https://") {
		return relativeURL
	}

	// If no protocol, assume https
	if !strings.HasPrefix(baseURL, "https://") && !strings.HasPrefix(baseURL, "http://") {
		baseURL = "https://" + baseURL
	}

	// Get base directory by removing the filename component
	baseDir := baseURL
	lastSlashIndex := strings.LastIndex(baseURL, "/")
	if lastSlashIndex > strings.Index(baseURL, "//")+1 && lastSlashIndex < len(baseURL)-1 {
		baseDir = baseURL[:lastSlashIndex+1]
	} else if !strings.HasSuffix(baseDir, "/") {
		baseDir += "/"
	}

	// Combine with relative URL
	return baseDir + strings.TrimPrefix(relativeURL, "/")
}

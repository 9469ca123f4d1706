// Command smoke exercises a running Smart Finance Coach backend end to end:
// it waits for the API, fetches a persona summary, posts a chat request and
// verifies the assistant reply. In mock mode it additionally asserts the
// canned-reply marker, so it runs without any API key.
//
// Usage:
//
//	go run ./cmd/smoke -base http://localhost:8080 -persona family -mode mock
package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/username/financecoach/backend/src/models"
)

var httpClient = &http.Client{Timeout: 10 * time.Second}

func getJSON(url string, out any) error {
	resp, err := httpClient.Get(url)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("GET %s: status %d: %s", url, resp.StatusCode, strings.TrimSpace(string(body)))
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func postJSON(url string, payload, out any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	resp, err := httpClient.Post(url, "application/json", bytes.NewReader(body))
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("POST %s: status %d: %s", url, resp.StatusCode, strings.TrimSpace(string(respBody)))
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func waitForAPI(baseURL string, timeout time.Duration) error {
	deadline := time.Now().Add(timeout)
	var lastErr error
	for time.Now().Before(deadline) {
		var health models.HealthStatus
		lastErr = getJSON(baseURL+"/api/health", &health)
		if lastErr == nil && health.Status == "ok" {
			return nil
		}
		time.Sleep(500 * time.Millisecond)
	}
	return fmt.Errorf("API did not become ready: %v", lastErr)
}

func run(baseURL, personaID, mode string) error {
	fmt.Println("Waiting for API...")
	if err := waitForAPI(baseURL, 20*time.Second); err != nil {
		return err
	}

	fmt.Printf("Fetching summary for persona %q...\n", personaID)
	var summary models.FinanceSummary
	if err := getJSON(fmt.Sprintf("%s/api/personas/%s/summary", baseURL, personaID), &summary); err != nil {
		return err
	}
	fmt.Printf("Summary OK: %d months, %d categories\n", len(summary.MonthlyOverview), len(summary.Categories))

	request := models.ChatRequest{
		PersonaID: personaID,
		Messages: []models.ChatMessage{
			{ID: "1", Role: models.RoleUser, Content: "Give me one actionable savings tip."},
		},
		Summary: &summary,
	}

	fmt.Println("Sending chat request...")
	var response models.ChatResponse
	if err := postJSON(baseURL+"/api/chat", request, &response); err != nil {
		return err
	}

	content := response.Message.Content
	if response.Message.Role != models.RoleAssistant || content == "" {
		return fmt.Errorf("unexpected chat response: %+v", response)
	}
	if mode == "mock" && !strings.Contains(strings.ToLower(content), "mock") {
		return fmt.Errorf("mock reply missing marker: %s", content)
	}

	preview := content
	if len(preview) > 120 {
		preview = preview[:120] + "..."
	}
	fmt.Printf("Chat OK (provider=%s, model=%s, latency=%dms): %s\n",
		response.Metadata.Provider, response.Metadata.Model, response.Metadata.LatencyMS, preview)
	return nil
}

func main() {
	baseURL := flag.String("base", "http://localhost:8080", "API base URL")
	personaID := flag.String("persona", "family", "persona id to exercise")
	mode := flag.String("mode", "mock", "smoke mode: mock or openai")
	flag.Parse()

	if err := run(strings.TrimSuffix(*baseURL, "/"), *personaID, *mode); err != nil {
		fmt.Fprintf(os.Stderr, "smoke test failed: %v\n", err)
		os.Exit(1)
	}
	fmt.Println("smoke test passed")
}

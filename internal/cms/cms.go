// Package cms talks to the Ghost-style CMS that hosts the marketing site's
// destination guide pages. The importer pulls guide posts and turns them into
// destination records; generated itinerary previews can be pushed back as
// posts through the Admin API.
package cms

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"deep-travel-collections/internal/config"
	"deep-travel-collections/internal/destination"

	"github.com/PuerkitoBio/goquery"
	"github.com/golang-jwt/jwt/v5"
)

// Tag is a CMS post tag.
type Tag struct {
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// Post represents a single destination guide post from the CMS API.
type Post struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	HTML      string `json:"html"`
	Featured  bool   `json:"featured"`
	UpdatedAt string `json:"updated_at"`
	Tags      []Tag  `json:"tags"`
}

// PostsResponse is the top-level structure of the CMS API response for posts.
type PostsResponse struct {
	Posts []Post `json:"posts"`
}

// Client is an interface for a CMS API client (Content & Admin).
type Client interface {
	FetchDestinations() ([]Post, error)
	CreatePost(title, html string, publish bool) (*Post, error)
}

// cmsClient is the concrete implementation of the CMS API client.
type cmsClient struct {
	httpClient *http.Client
	config     *config.Config
}

// NewClient creates a new CMS API client.
func NewClient(cfg *config.Config) Client {
	return &cmsClient{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		config:     cfg,
	}
}

// FetchDestinations fetches all destination guide posts from the Content API.
func (c *cmsClient) FetchDestinations() ([]Post, error) {
	url := fmt.Sprintf("%s/ghost/api/v3/content/posts/?key=%s&include=tags&filter=tag:destination&limit=all",
		c.config.CMSURL, c.config.CMSContentKey)

	req, err := http.NewRequest("GET", url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("content api error: status %d", resp.StatusCode)
	}

	var postsResponse PostsResponse
	if err := json.NewDecoder(resp.Body).Decode(&postsResponse); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	return postsResponse.Posts, nil
}

// CreatePost creates a new post using the Admin API.
func (c *cmsClient) CreatePost(title, html string, publish bool) (*Post, error) {
	token, err := c.createAdminToken()
	if err != nil {
		return nil, fmt.Errorf("failed to create admin token: %w", err)
	}

	status := "draft"
	if publish {
		status = "published"
	}

	newPost := map[string]interface{}{
		"posts": []map[string]interface{}{
			{
				"title":  title,
				"html":   html,
				"status": status,
			},
		},
	}

	body, _ := json.Marshal(newPost)
	url := fmt.Sprintf("%s/ghost/api/v3/admin/posts/?source=html", c.config.CMSURL)

	req, err := http.NewRequest("POST", url, strings.NewReader(string(body)))
	if err != nil {
		return nil, err
	}

	req.Header.Set("Authorization", "Ghost "+token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated && resp.StatusCode != http.StatusOK {
		var errResp interface{}
		json.NewDecoder(resp.Body).Decode(&errResp)
		return nil, fmt.Errorf("admin api error: status %d, body: %v", resp.StatusCode, errResp)
	}

	var response PostsResponse
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return nil, err
	}

	if len(response.Posts) == 0 {
		return nil, fmt.Errorf("no post returned from api")
	}

	return &response.Posts[0], nil
}

// createAdminToken generates a short-lived JWT for the Admin API.
func (c *cmsClient) createAdminToken() (string, error) {
	keyParts := strings.Split(c.config.CMSAdminKey, ":")
	if len(keyParts) != 2 {
		return "", fmt.Errorf("invalid admin key format: expected id:secret")
	}

	id := keyParts[0]
	secretHex := keyParts[1]

	secret, err := hex.DecodeString(secretHex)
	if err != nil {
		return "", fmt.Errorf("failed to decode secret hex: %w", err)
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"iat": time.Now().Unix(),
		"exp": time.Now().Add(5 * time.Minute).Unix(),
		"aud": "/v3/admin/",
	})
	token.Header["kid"] = id

	return token.SignedString(secret)
}

// MapToDestination turns a guide post into a destination record. The post
// body becomes plain-text prompt context; the country comes from the first
// tag that is not the "destination" marker itself.
func MapToDestination(post Post) (destination.Destination, error) {
	text, err := htmlToText(post.HTML)
	if err != nil {
		return destination.Destination{}, fmt.Errorf("failed to clean post HTML for %q: %w", post.Title, err)
	}

	country := ""
	for _, tag := range post.Tags {
		if tag.Slug != "destination" {
			country = tag.Name
			break
		}
	}

	return destination.Destination{
		ID:          post.ID,
		Name:        post.Title,
		Country:     country,
		Description: truncate(text, 2000),
		Featured:    post.Featured,
		UpdatedAt:   post.UpdatedAt,
	}, nil
}

// htmlToText strips markup and noise from a post body, keeping the text the
// generation prompts need.
func htmlToText(html string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", err
	}

	// Remove noise to save LLM tokens
	doc.Find("script, style, nav, footer, iframe, figure").Each(func(i int, s *goquery.Selection) {
		s.Remove()
	})

	return strings.TrimSpace(doc.Text()), nil
}

func truncate(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	return s[:limit]
}

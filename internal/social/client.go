// Package social wraps the social feed endpoints: posts, comments, likes,
// stories and hashtag lookup. Every mutation is followed by a full list
// refetch rather than an in-place patch, trading a round trip for
// consistency with server-side state.
package social

import (
	"context"
	"errors"
	"fmt"
	"net/url"

	"github.com/voyara/voyara-client/internal/api"
	"github.com/voyara/voyara-client/internal/models"
)

// Client calls the social endpoints
type Client struct {
	api *api.Client
}

// NewClient creates a social client on top of the shared API client
func NewClient(apiClient *api.Client) *Client {
	return &Client{api: apiClient}
}

// ListPosts fetches the feed. IsLiked on each post is scoped to the
// requesting user and valid only for this fetch.
func (c *Client) ListPosts(ctx context.Context) ([]models.Post, error) {
	var posts []models.Post
	if err := c.api.Get(ctx, "/social/posts", &posts); err != nil {
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}
	return posts, nil
}

// GetPost fetches a single post
func (c *Client) GetPost(ctx context.Context, id string) (models.Post, error) {
	var post models.Post
	if err := c.api.Get(ctx, "/social/posts/"+url.PathEscape(id), &post); err != nil {
		return models.Post{}, fmt.Errorf("failed to fetch post %s: %w", id, err)
	}
	return post, nil
}

// CreatePost creates a post and returns the refetched feed
func (c *Client) CreatePost(ctx context.Context, content, imageURL string, hashtags []string) ([]models.Post, error) {
	if content == "" && imageURL == "" {
		return nil, errors.New("post needs content or an image")
	}
	body := models.Post{Content: content, ImageURL: imageURL, Hashtags: hashtags}
	if err := c.api.Post(ctx, "/social/posts", body, nil); err != nil {
		return nil, fmt.Errorf("failed to create post: %w", err)
	}
	return c.ListPosts(ctx)
}

// DeletePost deletes a post and returns the refetched feed
func (c *Client) DeletePost(ctx context.Context, id string) ([]models.Post, error) {
	if err := c.api.Delete(ctx, "/social/posts/"+url.PathEscape(id)); err != nil {
		return nil, fmt.Errorf("failed to delete post %s: %w", id, err)
	}
	return c.ListPosts(ctx)
}

// ListComments fetches the append-only comment collection of a post
func (c *Client) ListComments(ctx context.Context, postID string) ([]models.Comment, error) {
	var comments []models.Comment
	path := "/social/posts/" + url.PathEscape(postID) + "/comments"
	if err := c.api.Get(ctx, path, &comments); err != nil {
		return nil, fmt.Errorf("failed to list comments for post %s: %w", postID, err)
	}
	return comments, nil
}

// CreateComment adds a comment and returns the refetched comment list
func (c *Client) CreateComment(ctx context.Context, postID, content string) ([]models.Comment, error) {
	if content == "" {
		return nil, errors.New("comment content is required")
	}
	body := models.Comment{Content: content}
	path := "/social/posts/" + url.PathEscape(postID) + "/comments"
	if err := c.api.Post(ctx, path, body, nil); err != nil {
		return nil, fmt.Errorf("failed to create comment: %w", err)
	}
	return c.ListComments(ctx, postID)
}

// ToggleLike likes or unlikes a post and returns the refetched post so the
// caller re-renders from server state
func (c *Client) ToggleLike(ctx context.Context, postID string) (models.Post, error) {
	path := "/social/posts/" + url.PathEscape(postID) + "/like"
	if err := c.api.Post(ctx, path, nil, nil); err != nil {
		return models.Post{}, fmt.Errorf("failed to toggle like on post %s: %w", postID, err)
	}
	return c.GetPost(ctx, postID)
}

// ListStories fetches current stories
func (c *Client) ListStories(ctx context.Context) ([]models.Story, error) {
	var stories []models.Story
	if err := c.api.Get(ctx, "/social/stories", &stories); err != nil {
		return nil, fmt.Errorf("failed to list stories: %w", err)
	}
	return stories, nil
}

// CreateStory creates a story and returns the refetched story list
func (c *Client) CreateStory(ctx context.Context, imageURL, caption string) ([]models.Story, error) {
	if imageURL == "" {
		return nil, errors.New("story image is required")
	}
	body := models.Story{ImageURL: imageURL, Caption: caption}
	if err := c.api.Post(ctx, "/social/stories", body, nil); err != nil {
		return nil, fmt.Errorf("failed to create story: %w", err)
	}
	return c.ListStories(ctx)
}

// ResolveHashtag resolves a hashtag string to its canonical entity, used to
// seed the search view when a hashtag is clicked. On failure the caller
// shows the error and does not navigate.
func (c *Client) ResolveHashtag(ctx context.Context, tag string) (models.HashtagEntity, error) {
	if tag == "" {
		return models.HashtagEntity{}, errors.New("hashtag is required")
	}
	var entity models.HashtagEntity
	path := "/social/tags?tag=" + url.QueryEscape(tag)
	if err := c.api.Get(ctx, path, &entity); err != nil {
		return models.HashtagEntity{}, fmt.Errorf("failed to resolve hashtag %q: %w", tag, err)
	}
	return entity, nil
}

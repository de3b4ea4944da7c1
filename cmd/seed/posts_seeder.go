package main

import (
	"context"
	"encoding/json"
	"errors"
	"log"

	"smart-blog-be/internal/dto"
	"smart-blog-be/internal/service"
	"smart-blog-be/pkg/lexical"

	"github.com/google/uuid"
)

const (
	demoEmail    = "demo@smartblog.dev"
	demoPassword = "demo1234"
)

type demoPost struct {
	title   string
	publish bool
	body    *lexical.Node
}

var demoPosts = []demoPost{
	{
		title:   "Welcome to Smart Blog",
		publish: true,
		body: lexical.NewRoot(
			lexical.NewHeading(1, lexical.NewText("Welcome", 0)),
			lexical.NewParagraph(
				lexical.NewText("Posts are written in a ", 0),
				lexical.NewText("rich-text", lexical.FormatBold),
				lexical.NewText(" editor and saved while you type.", 0),
			),
			lexical.NewList(false,
				lexical.NewListItem(lexical.NewText("Drafts stay private until published", 0)),
				lexical.NewListItem(lexical.NewText("Published posts are read-only", 0)),
			),
		),
	},
	{
		title: "Draft: ideas for next week",
		body: lexical.NewRoot(
			lexical.NewQuote(lexical.NewText("Write first, edit later.", lexical.FormatItalic)),
			lexical.NewList(true,
				lexical.NewListItem(lexical.NewText("Release notes", 0)),
				lexical.NewListItem(lexical.NewText("AI assist walkthrough", 0)),
			),
		),
	},
}

// SeedDemoUser creates the demo account, or reuses it when it already exists.
// Returns nil when the account exists, since its id cannot be looked up
// without logging in.
func SeedDemoUser(ctx context.Context, authService service.IAuthService) *uuid.UUID {
	user, err := authService.Signup(ctx, &dto.SignupRequest{Email: demoEmail, Password: demoPassword})
	if errors.Is(err, service.ErrEmailTaken) {
		log.Printf("User '%s' already exists, skipping...", demoEmail)
		return nil
	}
	if err != nil {
		log.Printf("Error creating user '%s': %v", demoEmail, err)
		return nil
	}
	log.Printf("Created user: %s (password %s)", user.Email, demoPassword)
	return &user.Id
}

func SeedDemoPosts(ctx context.Context, postService service.IPostService, authorId *uuid.UUID) {
	existing, err := postService.List(ctx, &dto.ListPostsRequest{Limit: service.MaxListLimit})
	if err != nil {
		log.Printf("Error listing posts: %v", err)
		return
	}
	titles := make(map[string]bool, len(existing.Posts))
	for _, p := range existing.Posts {
		titles[p.Title] = true
	}

	for _, d := range demoPosts {
		if titles[d.title] {
			log.Printf("Post '%s' already exists, skipping...", d.title)
			continue
		}

		content, err := json.Marshal(lexical.Serialize(d.body))
		if err != nil {
			log.Printf("Error encoding post '%s': %v", d.title, err)
			continue
		}
		title := d.title
		post, err := postService.Create(ctx, authorId, &dto.CreatePostRequest{Title: &title, ContentJSON: content})
		if err != nil {
			log.Printf("Error creating post '%s': %v", d.title, err)
			continue
		}
		if d.publish {
			if _, err := postService.Publish(ctx, post.Id); err != nil {
				log.Printf("Error publishing post '%s': %v", d.title, err)
				continue
			}
		}
		log.Printf("Created post: %s (%s)", d.title, post.Id)
	}
}

package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"foro-tematico/pkg/client"
)

var (
	showComments  bool
	postTitle     string
	postContent   string
	commentText   string
	commentSimple bool
	nestedRoute   bool
)

var postsCmd = &cobra.Command{
	Use:     "posts",
	Aliases: []string{"ls"},
	Short:   "List forum posts, newest first",
	Args:    cobra.NoArgs,
	Run:     listPosts,
}

var postCmd = &cobra.Command{
	Use:   "post",
	Short: "Publish a new post",
	Args:  cobra.NoArgs,
	Run:   createPost,
}

var commentCmd = &cobra.Command{
	Use:   "comment <postId>",
	Short: "Comment on a post",
	Args:  cobra.ExactArgs(1),
	Run:   addComment,
}

var commentsCmd = &cobra.Command{
	Use:   "comments <postId>",
	Short: "List the comments of a post, oldest first",
	Args:  cobra.ExactArgs(1),
	Run:   listComments,
}

func init() {
	postsCmd.Flags().BoolVarP(&showComments, "comments", "c", false, "print comments under each post")

	postCmd.Flags().StringVarP(&postTitle, "title", "t", "", "post title")
	postCmd.Flags().StringVarP(&postContent, "content", "m", "", "post body")

	commentCmd.Flags().StringVarP(&commentText, "content", "m", "", "comment body")
	commentCmd.Flags().BoolVar(&commentSimple, "simple", false, "use /add-comment, which only acknowledges")

	commentsCmd.Flags().BoolVar(&nestedRoute, "nested", false, "use /posts/:postId/comments")

	RootCmd.AddCommand(postsCmd, postCmd, commentCmd, commentsCmd)
}

func listPosts(cmd *cobra.Command, args []string) {
	ctx, cancel := withTimeout()
	defer cancel()

	v := mustView(ctx)
	renderPosts(v.Posts())
}

func createPost(cmd *cobra.Command, args []string) {
	ctx, cancel := withTimeout()
	defer cancel()

	v := mustView(ctx)
	v.SetTitle(postTitle)
	v.SetPostDraft(postContent)

	post, err := v.SubmitPost(ctx)
	if err != nil {
		alertAndExit("Failed to create post: %v", err)
	}
	success("Post #%d created", post.ID)
	renderPosts(v.Posts())
}

func addComment(cmd *cobra.Command, args []string) {
	postID := mustPostID(args[0])
	ctx, cancel := withTimeout()
	defer cancel()

	if commentSimple {
		id, err := mustSessions().Load()
		if err != nil {
			alertAndExit("not logged in, run `forum login` first")
		}
		if err := mustAPI().AddComment(ctx, postID, commentText, id.UserID); err != nil {
			alertAndExit("Failed to add comment: %v", err)
		}
		success("Comment added")
		return
	}

	v := mustView(ctx)
	v.SetCommentDraft(postID, commentText)
	c, err := v.SubmitComment(ctx, postID)
	if err != nil {
		alertAndExit("Failed to add comment: %v", err)
	}
	success("Comment #%d added by %s", c.ID, c.DisplayName())
}

func listComments(cmd *cobra.Command, args []string) {
	postID := mustPostID(args[0])
	ctx, cancel := withTimeout()
	defer cancel()

	comments, err := mustAPI().ListComments(ctx, postID, nestedRoute)
	if err != nil {
		alertAndExit("Failed to fetch comments: %v", err)
	}
	renderComments(comments)
}

func mustPostID(raw string) int64 {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		alertAndExit("invalid post id %q", raw)
	}
	return id
}

func renderPosts(posts []client.Post) {
	if len(posts) == 0 {
		fmt.Println("🤷‍♂️ No posts yet")
		return
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"#", "Title", "Author", "Created", "Comments"})
	for _, p := range posts {
		table.Append([]string{
			strconv.FormatInt(p.ID, 10),
			p.Title,
			p.Author,
			formatTime(p.CreatedAt),
			strconv.Itoa(len(p.Comments)),
		})
	}
	table.Render()

	if !showComments {
		return
	}
	for _, p := range posts {
		fmt.Println()
		fmt.Println(color.New(color.Bold, color.FgHiCyan).Sprintf("#%d %s", p.ID, p.Title))
		fmt.Println(p.Content)
		for _, c := range p.Comments {
			fmt.Printf("  %s %s: %s\n", color.New(color.FgHiBlack).Sprint(formatTime(c.CreatedAt)), color.New(color.Bold).Sprint(c.DisplayName()), c.Content)
		}
	}
}

func renderComments(comments []client.Comment) {
	if len(comments) == 0 {
		fmt.Println("🤷‍♂️ No comments yet")
		return
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"#", "Author", "Created", "Comment"})
	for _, c := range comments {
		table.Append([]string{
			strconv.FormatInt(c.ID, 10),
			c.DisplayName(),
			formatTime(c.CreatedAt),
			c.Content,
		})
	}
	table.Render()
}

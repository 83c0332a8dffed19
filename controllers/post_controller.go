package controllers

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"postboard/middleware"
	"postboard/models"
	"postboard/storage"
	"postboard/utils"
)

// PostController handles the post CRUD surface and upload URL issuance.
type PostController struct {
	store  storage.PostStore
	signer storage.URLSigner
}

// NewPostController creates a new PostController instance.
func NewPostController(store storage.PostStore, signer storage.URLSigner) *PostController {
	return &PostController{store: store, signer: signer}
}

// CreatePost generates an id, obtains an upload URL for the post image and
// persists one record under the caller's partition.
func (p *PostController) CreatePost(ctx *gin.Context) {
	var req struct {
		Title string `json:"title" binding:"required"`
		Body  string `json:"body" binding:"required"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.ValidationError(ctx, err)
		return
	}

	identity, ok := middleware.Identity(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}

	title := utils.Sanitize(req.Title)
	body := utils.Sanitize(req.Body)

	postID := uuid.NewString()
	imageKey := fmt.Sprintf("%s/%s/image.png", identity, postID)

	// The URL must exist before the write; a failed write wastes the URL,
	// it is not reclaimed.
	upload, err := p.signer.SignedPutURL(ctx.Request.Context(), imageKey, "image/png")
	if err != nil {
		utils.Sugar.Errorf("signed url issuance failed for %s: %v", imageKey, err)
		utils.Error(ctx, http.StatusInternalServerError, 50010, "failed to issue upload url")
		return
	}

	post := models.Post{
		User:     models.UserKey(identity),
		PostID:   postID,
		Title:    title,
		Body:     body,
		ImageURL: upload.URL,
	}

	utils.Sugar.Infof("creating post id=%s user=%s title=%q", postID, identity, title)
	if err := p.store.Put(ctx.Request.Context(), post); err != nil {
		utils.Sugar.Errorf("put post id=%s failed: %v", postID, err)
		utils.Error(ctx, http.StatusInternalServerError, 50011, "failed to create post")
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"post_id": postID,
		"user":    identity,
		"title":   title,
		"body":    body,
	})
}

// ListPosts returns every post, or one user's posts when the user query
// parameter is present. The unfiltered form reads the whole table.
func (p *PostController) ListPosts(ctx *gin.Context) {
	user := strings.TrimSpace(ctx.Query("user"))

	var (
		posts []models.Post
		err   error
	)
	if user != "" {
		utils.Sugar.Infof("listing posts for user=%s", user)
		posts, err = p.store.ListByUser(ctx.Request.Context(), user)
	} else {
		utils.Sugar.Info("listing all posts (full table read)")
		posts, err = p.store.ListAll(ctx.Request.Context())
	}
	if err != nil {
		utils.Sugar.Errorf("list posts failed: %v", err)
		utils.Error(ctx, http.StatusInternalServerError, 50012, "failed to list posts")
		return
	}

	views := make([]models.PostView, 0, len(posts))
	for _, post := range posts {
		views = append(views, post.View())
	}
	utils.Sugar.Infof("returning %d posts", len(views))
	ctx.JSON(http.StatusOK, views)
}

// DeletePost removes one post from the caller's partition if it exists.
// The associated image object is left in place.
func (p *PostController) DeletePost(ctx *gin.Context) {
	postID := ctx.Param("post_id")
	identity, ok := middleware.Identity(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}

	post, err := p.store.Get(ctx.Request.Context(), identity, postID)
	if err != nil {
		utils.Sugar.Errorf("lookup post id=%s failed: %v", postID, err)
		utils.Error(ctx, http.StatusInternalServerError, 50013, "failed to load post")
		return
	}
	if post == nil {
		ctx.JSON(http.StatusNotFound, gin.H{"message": "Post not found"})
		return
	}

	if err := p.store.Delete(ctx.Request.Context(), identity, postID); err != nil {
		utils.Sugar.Errorf("delete post id=%s failed: %v", postID, err)
		utils.Error(ctx, http.StatusInternalServerError, 50014, "failed to delete post")
		return
	}

	utils.Sugar.Infof("deleted post id=%s user=%s", postID, identity)
	ctx.JSON(http.StatusOK, gin.H{"message": "Post deleted successfully"})
}

// SignedURLPut issues a time-limited upload URL for an arbitrary object of
// the caller's post. Pure passthrough to the blob store; filename and
// filetype are not validated here.
func (p *PostController) SignedURLPut(ctx *gin.Context) {
	filename := strings.TrimSpace(ctx.Query("filename"))
	filetype := strings.TrimSpace(ctx.Query("filetype"))
	postID := strings.TrimSpace(ctx.Query("postId"))
	if filename == "" || filetype == "" || postID == "" {
		utils.Error(ctx, http.StatusBadRequest, 40010, "filename, filetype and postId are required")
		return
	}

	identity, ok := middleware.Identity(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}

	key := fmt.Sprintf("%s/%s/%s", identity, postID, filename)
	upload, err := p.signer.SignedPutURL(ctx.Request.Context(), key, filetype)
	if err != nil {
		utils.Sugar.Errorf("signed url issuance failed for %s: %v", key, err)
		utils.Error(ctx, http.StatusInternalServerError, 50015, "failed to issue upload url")
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"url":        upload.URL,
		"key":        upload.Key,
		"expires_in": int(upload.ExpiresIn.Seconds()),
	})
}

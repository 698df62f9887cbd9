package controllers

import (
	"mime"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Santiago26009/blog-challenge/domain"
	"github.com/Santiago26009/blog-challenge/models"
	"github.com/Santiago26009/blog-challenge/services"
	"github.com/Santiago26009/blog-challenge/utils"
)

type ProfileController struct {
	profiles *services.ProfileService
}

func NewProfileController(profiles *services.ProfileService) *ProfileController {
	return &ProfileController{profiles: profiles}
}

func (pc *ProfileController) render(p *models.Profile) profileResponse {
	return profileResponse{Biography: p.Biography, ProfileImage: pc.profiles.ImageURL(p.ProfileImage)}
}

// readProfileInput accepts JSON with an image reference, or a multipart form
// with an optional image file under profile_image. The returned closer
// releases the uploaded file.
func readProfileInput(c *gin.Context) (services.ProfileInput, func(), error) {
	var in services.ProfileInput
	noop := func() {}
	if !strings.HasPrefix(c.ContentType(), "multipart/form-data") {
		return in, noop, bindJSON(c, &in)
	}

	if bio, ok := c.GetPostForm("biography"); ok {
		in.Biography = &bio
	}
	header, err := c.FormFile("profile_image")
	if err == http.ErrMissingFile {
		if ref, ok := c.GetPostForm("profile_image"); ok {
			in.ProfileImage = &ref
		}
		return in, noop, nil
	}
	if err != nil {
		return in, noop, domain.BadRequest("Multipart form parse error - " + err.Error())
	}

	file, err := header.Open()
	if err != nil {
		return in, noop, err
	}
	contentType := header.Header.Get("Content-Type")
	if contentType == "" || contentType == "application/octet-stream" {
		contentType = mime.TypeByExtension(strings.ToLower(filepath.Ext(header.Filename)))
	}
	in.Upload = &services.ImageUpload{
		FileName:    header.Filename,
		ContentType: contentType,
		Size:        header.Size,
		Body:        file,
	}
	return in, func() { file.Close() }, nil
}

func (pc *ProfileController) GetProfile(c *gin.Context) {
	profile, err := pc.profiles.Get(c.Request.Context(), currentUserID(c))
	if err != nil {
		utils.AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, pc.render(profile))
}

// CreateProfile godoc
// @Summary Create the caller's profile
// @Tags profile
// @Accept json,mpfd
// @Produce json
// @Success 200 {object} profileResponse
// @Router /profile/ [post]
func (pc *ProfileController) CreateProfile(c *gin.Context) {
	in, release, err := readProfileInput(c)
	defer release()
	if err != nil {
		utils.AbortWithError(c, err)
		return
	}

	profile, err := pc.profiles.Create(c.Request.Context(), currentUserID(c), in)
	if err != nil {
		utils.AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, pc.render(profile))
}

// UpdateProfile serves both PUT (full) and PATCH (partial).
func (pc *ProfileController) UpdateProfile(c *gin.Context) {
	in, release, err := readProfileInput(c)
	defer release()
	if err != nil {
		utils.AbortWithError(c, err)
		return
	}

	partial := c.Request.Method == http.MethodPatch
	profile, err := pc.profiles.Update(c.Request.Context(), currentUserID(c), in, partial)
	if err != nil {
		utils.AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, pc.render(profile))
}

func (pc *ProfileController) DeleteProfile(c *gin.Context) {
	if err := pc.profiles.Delete(c.Request.Context(), currentUserID(c)); err != nil {
		utils.AbortWithError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

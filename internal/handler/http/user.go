package http

import (
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/MKhiriev/go-identity/internal/app"
	"github.com/MKhiriev/go-identity/internal/logger"
	"github.com/MKhiriev/go-identity/internal/service"
	"github.com/MKhiriev/go-identity/internal/utils"
	"github.com/MKhiriev/go-identity/models"
	"github.com/go-chi/chi/v5"
)

const (
	// avatarFormField is the multipart field carrying the uploaded image.
	avatarFormField = "file0"

	// maxAvatarMemory is the part of a multipart body kept in memory; the
	// rest spills to temporary files.
	maxAvatarMemory = 8 << 20

	// maxAvatarUploadSize caps the whole upload request body.
	maxAvatarUploadSize = 10 << 20
)

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var input models.RegisterInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		writeError(w, r, errInvalidJSON)
		return
	}

	var actor *models.Claims
	if claims, ok := utils.GetClaimsFromContext(ctx); ok {
		actor = &claims
	}

	result, err := h.services.IdentityService.Register(ctx, input, actor)
	if err != nil {
		writeError(w, r, err)
		return
	}

	if result.AlreadyExists {
		h.writeJSON(w, r, models.Response{Status: models.StatusSuccess, Message: app.MsgUserAlreadyExists}, http.StatusOK)
		return
	}

	h.writeJSON(w, r, models.Response{
		Status:    models.StatusSuccess,
		Message:   app.MsgUserRegistered,
		User:      result.User,
		CreatedBy: result.CreatedBy,
	}, http.StatusOK)
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	var creds models.Credentials
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		writeError(w, r, errInvalidJSON)
		return
	}

	result, err := h.services.IdentityService.Login(r.Context(), creds)
	if err != nil {
		writeError(w, r, err)
		return
	}

	log.Debug().Str("id", result.User.ID).Msg("user successfully logged in")

	h.writeJSON(w, r, models.Response{
		Status:  models.StatusSuccess,
		Message: app.MsgLoginSuccessful,
		User:    result.User,
		Token:   result.Token.String(),
	}, http.StatusOK)
}

func (h *Handler) profile(w http.ResponseWriter, r *http.Request) {
	user, err := h.services.IdentityService.GetProfile(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, err)
		return
	}

	h.writeJSON(w, r, models.Response{Status: models.StatusSuccess, User: user}, http.StatusOK)
}

func (h *Handler) listUsers(w http.ResponseWriter, r *http.Request) {
	claims, ok := utils.GetClaimsFromContext(r.Context())
	if !ok {
		writeError(w, r, errMissingClaims)
		return
	}

	list, err := h.services.IdentityService.ListUsers(r.Context(), pageFromRequest(r), models.UserFilter{Role: r.URL.Query().Get("role")}, claims)
	if err != nil {
		writeError(w, r, err)
		return
	}

	h.writeJSON(w, r, models.ListResponse{
		Items:        list.Items,
		TotalUsers:   list.TotalItems,
		TotalPages:   list.TotalPages,
		Page:         list.Page,
		LoggedInUser: list.LoggedInUser,
	}, http.StatusOK)
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		writeError(w, r, errMissingClaims)
		return
	}

	var update models.ProfileUpdate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		writeError(w, r, errInvalidJSON)
		return
	}

	updated, err := h.services.IdentityService.UpdateProfile(r.Context(), userID, update)
	if err != nil {
		writeError(w, r, err)
		return
	}

	h.writeJSON(w, r, models.Response{
		Status:  models.StatusSuccess,
		Message: app.MsgUserUpdated,
		User:    updated,
	}, http.StatusOK)
}

func (h *Handler) upload(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		writeError(w, r, errMissingClaims)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxAvatarUploadSize)
	file, header, err := formFile(r)
	if err != nil {
		log.Debug().Err(err).Msg("no avatar in request")
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, r, errUploadTooLarge)
			return
		}
		writeError(w, r, service.ErrNoFileProvided)
		return
	}
	defer file.Close()

	result, err := h.services.IdentityService.UploadAvatar(r.Context(), userID, &models.Upload{
		OriginalName: header.Filename,
		Size:         header.Size,
		Content:      file,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}

	h.writeJSON(w, r, models.Response{
		Status:  models.StatusSuccess,
		Message: app.MsgAvatarUploaded,
		User:    result.User,
		File:    &result.File,
	}, http.StatusOK)
}

func (h *Handler) avatar(w http.ResponseWriter, r *http.Request) {
	file, err := h.services.IdentityService.FetchAvatar(r.Context(), chi.URLParam(r, "file"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	defer file.Content.Close()

	http.ServeContent(w, r, file.Name, file.ModTime, file.Content)
}

func (h *Handler) deleteUser(w http.ResponseWriter, r *http.Request) {
	claims, ok := utils.GetClaimsFromContext(r.Context())
	if !ok {
		writeError(w, r, errMissingClaims)
		return
	}

	deleted, err := h.services.IdentityService.DeleteUser(r.Context(), claims, chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, err)
		return
	}

	h.writeJSON(w, r, models.Response{
		Status:  models.StatusSuccess,
		Message: app.MsgUserDeleted,
		User:    deleted,
	}, http.StatusOK)
}

func (h *Handler) allUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.services.IdentityService.ListAllUsers(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}

	h.writeJSON(w, r, models.Response{Status: models.StatusSuccess, Users: users}, http.StatusOK)
}

func (h *Handler) writeJSON(w http.ResponseWriter, r *http.Request, data any, status int) {
	if _, err := utils.WriteJSON(w, data, status); err != nil {
		logger.FromRequest(r).Err(err).Msg("error writing response")
	}
}

// pageFromRequest reads the optional {page} path parameter. Anything that is
// not a positive integer selects the first page.
func pageFromRequest(r *http.Request) int {
	page, err := strconv.Atoi(chi.URLParam(r, "page"))
	if err != nil || page < 1 {
		return 1
	}
	return page
}

func formFile(r *http.Request) (multipart.File, *multipart.FileHeader, error) {
	if err := r.ParseMultipartForm(maxAvatarMemory); err != nil {
		return nil, nil, err
	}

	file, header, err := r.FormFile(avatarFormField)
	if err != nil {
		return nil, nil, err
	}
	if header.Filename == "" {
		_ = file.Close()
		return nil, nil, errors.New("empty file name")
	}

	return file, header, nil
}

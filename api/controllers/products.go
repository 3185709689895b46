package controllers

import (
	"encoding/json"
	"io"
	"mime"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/relistlabs/relist-backend/api/responses"
	"github.com/relistlabs/relist-backend/api/validators"
	"github.com/relistlabs/relist-backend/internal/catalog"
	"github.com/relistlabs/relist-backend/internal/media"
	"github.com/relistlabs/relist-backend/pkg/enums"
	pkgerrors "github.com/relistlabs/relist-backend/pkg/errors"
	"github.com/relistlabs/relist-backend/pkg/logger"
	"github.com/relistlabs/relist-backend/pkg/pagination"
)

const maxMultipartMemory = 32 << 20

// ListProducts serves the public catalog with filters and cursor pagination.
func ListProducts(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		input, err := listInputFromQuery(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		page, err := svc.ListProducts(r.Context(), *input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, page)
	}
}

// GetProduct returns one active listing by id.
func GetProduct(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		id, err := validators.ParsePathUUID(chi.URLParam(r, "id"), "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		product, err := svc.GetProduct(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, product)
	}
}

// ListMyProducts returns the authenticated user's listings, deactivated ones
// included.
func ListMyProducts(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		userID, err := requireUserID(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		products, err := svc.ListMine(r.Context(), userID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, products)
	}
}

// CreateProduct publishes a new listing. The request is either plain JSON or
// multipart/form-data with a "payload" JSON part plus "images" file parts; in
// the multipart case uploaded images are stored before the listing is created.
func CreateProduct(svc catalog.Service, mediaSvc media.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		userID, err := requireUserID(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		payload, uploaded, err := decodeCreateProduct(r, mediaSvc)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		product, err := svc.CreateProduct(r.Context(), userID, *payload)
		if err != nil {
			// The listing never materialized, drop any stored images.
			for _, path := range uploaded {
				if mediaSvc != nil {
					_ = mediaSvc.Remove(r.Context(), path)
				}
			}
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, product)
	}
}

// UpdateProduct applies a partial update to a listing owned by the caller.
// Like create, it accepts plain JSON or multipart with replacement images.
func UpdateProduct(svc catalog.Service, mediaSvc media.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		userID, err := requireUserID(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		id, err := validators.ParsePathUUID(chi.URLParam(r, "id"), "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		payload, uploaded, err := decodeUpdateProduct(r, mediaSvc)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		product, err := svc.UpdateProduct(r.Context(), userID, id, *payload)
		if err != nil {
			for _, path := range uploaded {
				if mediaSvc != nil {
					_ = mediaSvc.Remove(r.Context(), path)
				}
			}
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, product)
	}
}

// DeleteProduct deactivates a listing owned by the caller.
func DeleteProduct(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		userID, err := requireUserID(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		id, err := validators.ParsePathUUID(chi.URLParam(r, "id"), "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.DeleteProduct(r.Context(), userID, id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}

func listInputFromQuery(r *http.Request) (*catalog.ListProductsInput, error) {
	limit, err := validators.ParseQueryInt(r, "limit", pagination.DefaultLimit, 1, pagination.MaxLimit)
	if err != nil {
		return nil, err
	}

	categoryID, err := validators.ParseQueryUUID(r, "category")
	if err != nil {
		return nil, err
	}

	minPrice, err := validators.ParseQueryDecimal(r, "minPrice")
	if err != nil {
		return nil, err
	}

	maxPrice, err := validators.ParseQueryDecimal(r, "maxPrice")
	if err != nil {
		return nil, err
	}

	var condition *enums.ProductCondition
	if raw := strings.TrimSpace(r.URL.Query().Get("condition")); raw != "" {
		parsed, err := enums.ParseProductCondition(raw)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid condition")
		}
		condition = &parsed
	}

	return &catalog.ListProductsInput{
		Filters: catalog.ListFilters{
			CategoryID: categoryID,
			Search:     strings.TrimSpace(r.URL.Query().Get("search")),
			Condition:  condition,
			MinPrice:   minPrice,
			MaxPrice:   maxPrice,
		},
		Pagination: pagination.Params{
			Limit:  limit,
			Cursor: strings.TrimSpace(r.URL.Query().Get("cursor")),
		},
	}, nil
}

func decodeCreateProduct(r *http.Request, mediaSvc media.Service) (*catalog.CreateProductRequest, []string, error) {
	if !isMultipart(r) {
		var payload catalog.CreateProductRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			return nil, nil, err
		}
		return &payload, nil, nil
	}

	var payload catalog.CreateProductRequest
	paths, err := decodeMultipartPayload(r, mediaSvc, &payload)
	if err != nil {
		return nil, nil, err
	}
	payload.Images = append(payload.Images, paths...)
	return &payload, paths, nil
}

func decodeUpdateProduct(r *http.Request, mediaSvc media.Service) (*catalog.UpdateProductRequest, []string, error) {
	if !isMultipart(r) {
		var payload catalog.UpdateProductRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			return nil, nil, err
		}
		return &payload, nil, nil
	}

	var payload catalog.UpdateProductRequest
	paths, err := decodeMultipartPayload(r, mediaSvc, &payload)
	if err != nil {
		return nil, nil, err
	}
	if len(paths) > 0 {
		payload.Images = append(payload.Images, paths...)
	}
	return &payload, paths, nil
}

func isMultipart(r *http.Request) bool {
	contentType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	return contentType == "multipart/form-data"
}

// decodeMultipartPayload parses a "payload" JSON part into dest and stores
// any "images" file parts, returning their public paths.
func decodeMultipartPayload(r *http.Request, mediaSvc media.Service, dest any) ([]string, error) {
	if err := r.ParseMultipartForm(maxMultipartMemory); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid multipart form")
	}

	raw := r.FormValue("payload")
	if raw == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "missing payload field")
	}
	if err := json.Unmarshal([]byte(raw), dest); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid payload field")
	}
	if err := validators.ValidateStruct(dest); err != nil {
		return nil, err
	}

	files := r.MultipartForm.File["images"]
	if len(files) == 0 {
		return nil, nil
	}
	if mediaSvc == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "media service unavailable")
	}

	uploads := make([]media.Upload, 0, len(files))
	for _, header := range files {
		file, err := header.Open()
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "reading upload")
		}
		data, err := io.ReadAll(file)
		file.Close()
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "reading upload")
		}
		uploads = append(uploads, media.Upload{Filename: header.Filename, Data: data})
	}

	return mediaSvc.SaveImages(r.Context(), uploads)
}

package handler

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/user/scraper-service/internal/delivery/http/request"
	"github.com/user/scraper-service/internal/delivery/http/response"
	"github.com/user/scraper-service/internal/entity"
	"github.com/user/scraper-service/internal/repository"
	"github.com/user/scraper-service/internal/usecase"
)

type Handler struct {
	scraper       usecase.Scraper
	bulkScraper   usecase.BulkScraper
	externalCrawl usecase.ExternalCrawlRunner
	statusManager usecase.StatusManager
	knowledgeRepo repository.KnowledgeRepository
}

func NewHandler(
	scraper usecase.Scraper,
	bulkScraper usecase.BulkScraper,
	externalCrawl usecase.ExternalCrawlRunner,
	statusManager usecase.StatusManager,
	knowledgeRepo repository.KnowledgeRepository,
) *Handler {
	return &Handler{
		scraper:       scraper,
		bulkScraper:   bulkScraper,
		externalCrawl: externalCrawl,
		statusManager: statusManager,
		knowledgeRepo: knowledgeRepo,
	}
}

func (h *Handler) HandleScrapeURL(w http.ResponseWriter, r *http.Request) {
	var req request.ScrapeURLRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeJSONError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.TeamID == "" {
		h.writeJSONError(w, "team_id is required", http.StatusBadRequest)
		return
	}
	if _, err := url.ParseRequestURI(req.URL); err != nil {
		h.writeJSONError(w, "Invalid URL format", http.StatusBadRequest)
		return
	}

	item, err := h.scraper.ScrapeURL(r.Context(), req.URL, req.TeamID, req.UserID, req.ContentType)
	if err != nil {
		if errors.Is(err, usecase.ErrInvalidContentType) {
			h.writeJSONError(w, err.Error(), http.StatusBadRequest)
			return
		}
		// Extraction failures surface as an unsuccessful envelope, not an
		// HTTP error, matching the scrape-url contract.
		slog.Error("Scrape failed", "url", req.URL, "error", err)
		h.writeJSON(w, http.StatusOK, response.ScrapeResponse{
			Success: false,
			Message: err.Error(),
		})
		return
	}

	data := response.FromItem(item)
	h.writeJSON(w, http.StatusOK, response.ScrapeResponse{
		Success: true,
		Message: "Content scraped successfully",
		Data:    &data,
	})
}

func (h *Handler) HandleBulkScrape(w http.ResponseWriter, r *http.Request) {
	var req request.BulkScrapeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeJSONError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.TeamID == "" {
		h.writeJSONError(w, "team_id is required", http.StatusBadRequest)
		return
	}
	if _, err := url.ParseRequestURI(req.URL); err != nil {
		h.writeJSONError(w, "Invalid URL format", http.StatusBadRequest)
		return
	}
	if req.MaxDepth != 0 && req.MaxDepth != 1 {
		h.writeJSONError(w, "max_depth beyond 1 is not supported", http.StatusBadRequest)
		return
	}

	includeBase := true
	if req.IncludeBaseURL != nil {
		includeBase = *req.IncludeBaseURL
	}

	result, err := h.bulkScraper.BulkScrape(r.Context(), usecase.BulkRequest{
		SeedURL:     req.URL,
		TeamID:      req.TeamID,
		UserID:      req.UserID,
		MaxLinks:    req.MaxLinks,
		IncludeBase: includeBase,
	})
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrInvalidMaxLinks):
			h.writeJSONError(w, err.Error(), http.StatusBadRequest)
		case errors.Is(err, usecase.ErrSeedUnreachable):
			h.writeJSONError(w, err.Error(), http.StatusBadGateway)
		case errors.Is(err, usecase.ErrNothingToScrape):
			h.writeJSONError(w, err.Error(), http.StatusUnprocessableEntity)
		default:
			slog.Error("Bulk scrape failed", "url", req.URL, "error", err)
			h.writeJSONError(w, "Internal server error", http.StatusInternalServerError)
		}
		return
	}

	h.writeJSON(w, http.StatusOK, response.BulkScrapeResponse{
		TeamID:   result.TeamID,
		Items:    response.FromItems(result.Items),
		Failures: result.Failures,
	})
}

func (h *Handler) HandleScrapeDocument(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(usecase.MaxDocumentSize); err != nil {
		h.writeJSONError(w, "Invalid multipart form", http.StatusBadRequest)
		return
	}
	teamID := r.FormValue("team_id")
	if teamID == "" {
		h.writeJSONError(w, "team_id is required", http.StatusBadRequest)
		return
	}
	userID := r.FormValue("user_id")

	file, header, err := r.FormFile("file")
	if err != nil {
		h.writeJSONError(w, "file is required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	if !strings.HasSuffix(strings.ToLower(header.Filename), ".pdf") {
		h.writeJSONError(w, "Only PDF files are supported", http.StatusBadRequest)
		return
	}

	data, err := io.ReadAll(file)
	if err != nil {
		h.writeJSONError(w, "Failed to read uploaded file", http.StatusBadRequest)
		return
	}

	items, err := h.scraper.ScrapeDocument(r.Context(), header.Filename, data, teamID, userID)
	if err != nil {
		if errors.Is(err, repository.ErrDocumentTooLarge) {
			h.writeJSONError(w, "File too large (max 50MB)", http.StatusBadRequest)
			return
		}
		slog.Error("Document scrape failed", "filename", header.Filename, "error", err)
		h.writeJSONError(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	h.writeJSON(w, http.StatusOK, response.DocumentScrapeResponse{
		Success: true,
		Items:   response.FromItems(items),
	})
}

func (h *Handler) HandleExternalCrawl(w http.ResponseWriter, r *http.Request) {
	rawURL := r.URL.Query().Get("url")
	if _, err := url.ParseRequestURI(rawURL); err != nil {
		h.writeJSONError(w, "url query parameter is required", http.StatusBadRequest)
		return
	}

	maxLinks := 0
	if v := r.URL.Query().Get("max_links"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil {
			h.writeJSONError(w, "max_links must be an integer", http.StatusBadRequest)
			return
		}
		maxLinks = parsed
	}

	output, err := h.externalCrawl.Run(r.Context(), rawURL, maxLinks)
	if err != nil {
		if errors.Is(err, usecase.ErrInvalidMaxLinks) {
			h.writeJSONError(w, err.Error(), http.StatusBadRequest)
			return
		}
		var bridgeErr *repository.BridgeError
		if errors.As(err, &bridgeErr) {
			// The captured log streams travel with the failure, so the
			// caller can always see what the child printed.
			h.writeJSON(w, bridgeStatus(bridgeErr), map[string]string{
				"error":          bridgeErr.Error(),
				"crawler_stdout": bridgeErr.Stdout,
				"crawler_stderr": bridgeErr.Stderr,
			})
			return
		}
		slog.Error("External crawl failed", "url", rawURL, "error", err)
		h.writeJSONError(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	results := output.Results
	if results == nil {
		results = []entity.ExternalCrawlResult{}
	}
	h.writeJSON(w, http.StatusOK, response.ExternalCrawlResponse{
		Results:       results,
		CrawlerStdout: output.Stdout,
		CrawlerStderr: output.Stderr,
	})
}

func (h *Handler) HandleListKnowledge(w http.ResponseWriter, r *http.Request) {
	teamID := r.URL.Query().Get("team_id")
	if teamID == "" {
		h.writeJSONError(w, "team_id query parameter is required", http.StatusBadRequest)
		return
	}
	userID := r.URL.Query().Get("user_id")

	items, err := h.knowledgeRepo.List(r.Context(), teamID, userID)
	if err != nil {
		slog.Error("Failed to list knowledge base", "team_id", teamID, "error", err)
		h.writeJSONError(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	h.writeJSON(w, http.StatusOK, response.FromItems(items))
}

func (h *Handler) HandleDeleteKnowledge(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	teamID := r.URL.Query().Get("team_id")
	if teamID == "" {
		h.writeJSONError(w, "team_id query parameter is required", http.StatusBadRequest)
		return
	}

	if err := h.knowledgeRepo.Delete(r.Context(), id, teamID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			h.writeJSONError(w, "Content not found", http.StatusNotFound)
			return
		}
		slog.Error("Failed to delete content", "id", id, "team_id", teamID, "error", err)
		h.writeJSONError(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]string{"message": "Content deleted successfully"})
}

func (h *Handler) HandleCreateStatus(w http.ResponseWriter, r *http.Request) {
	var req request.StatusCheckRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeJSONError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.ClientName == "" {
		h.writeJSONError(w, "client_name is required", http.StatusBadRequest)
		return
	}

	check, err := h.statusManager.Create(r.Context(), req.ClientName)
	if err != nil {
		slog.Error("Failed to create status check", "error", err)
		h.writeJSONError(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	h.writeJSON(w, http.StatusOK, check)
}

func (h *Handler) HandleListStatus(w http.ResponseWriter, r *http.Request) {
	checks, err := h.statusManager.List(r.Context())
	if err != nil {
		slog.Error("Failed to list status checks", "error", err)
		h.writeJSONError(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	h.writeJSON(w, http.StatusOK, checks)
}

func (h *Handler) HandleHealthCheck(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func bridgeStatus(err *repository.BridgeError) int {
	switch err.Kind {
	case repository.BridgeTimeout:
		return http.StatusGatewayTimeout
	case repository.BridgeUnavailable:
		return http.StatusServiceUnavailable
	}
	return http.StatusBadGateway
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("Failed to write JSON response", "error", err)
	}
}

func (h *Handler) writeJSONError(w http.ResponseWriter, message string, status int) {
	h.writeJSON(w, status, map[string]string{"error": message})
}

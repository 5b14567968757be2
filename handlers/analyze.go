package handlers

import (
	"errors"
	"log"
	"mime"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"go-textlens/middleware"
	"go-textlens/nlp"
	"go-textlens/types"
)

// Both messages are returned to the client verbatim.
var (
	ErrInvalidInput = errors.New("Request must be JSON with a text field")
	ErrEmptyText    = errors.New("Text field cannot be empty")
)

// AnalyzeText runs NER and sentiment analysis on the posted text.
func AnalyzeText(c *gin.Context, analyzer *nlp.Analyzer) {
	text, err := bindText(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	resp, err := analyzer.Analyze(c.Request.Context(), text)
	if err != nil {
		log.Printf("[%s] Analysis failed: %v", middleware.GetRequestID(c), err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Analysis failed: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, resp)
}

// bindText reads {"text": "..."} from a JSON body.
func bindText(c *gin.Context) (string, error) {
	if !isJSON(c.GetHeader("Content-Type")) {
		return "", ErrInvalidInput
	}

	var request types.AnalyzeRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		return "", ErrInvalidInput
	}
	if request.Text == "" {
		return "", ErrEmptyText
	}
	return request.Text, nil
}

// isJSON accepts application/json and application/*+json.
func isJSON(contentType string) bool {
	mt, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}
	return mt == "application/json" ||
		(strings.HasPrefix(mt, "application/") && strings.HasSuffix(mt, "+json"))
}

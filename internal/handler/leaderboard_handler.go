package handler

import (
	"encoding/csv"
	"fmt"
	"log"
	"net/http"
	"regexp"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"

	"github.com/yourusername/progress-api/internal/domain/entity"
	"github.com/yourusername/progress-api/internal/handler/dto"
	"github.com/yourusername/progress-api/internal/service"
)

var leaderboardErrors = errorMessages{
	NotFound: "No user data found",
	Internal: "Failed to get leaderboard data",
}

var unsafeFilenameChars = regexp.MustCompile(`[^A-Za-z0-9_-]+`)

// LeaderboardHandler отдаёт лидерборд игровой сессии
type LeaderboardHandler struct {
	leaderboardService *service.LeaderboardService
}

// NewLeaderboardHandler создает новый обработчик лидерборда
func NewLeaderboardHandler(leaderboardService *service.LeaderboardService) *LeaderboardHandler {
	return &LeaderboardHandler{leaderboardService: leaderboardService}
}

// GetLeaderboard возвращает [{name, score}] по убыванию очков
func (h *LeaderboardHandler) GetLeaderboard(c *gin.Context) {
	var req dto.LeaderboardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c, err)
		return
	}

	entries, err := h.leaderboardService.GetLeaderboard(c.Request.Context(), req.GameCode)
	if err != nil {
		handleError(c, err, leaderboardErrors)
		return
	}

	c.JSON(http.StatusOK, entries)
}

// ExportLeaderboard выгружает лидерборд в CSV (по умолчанию) или XLSX
func (h *LeaderboardHandler) ExportLeaderboard(c *gin.Context) {
	gameCode := c.Query("gameCode")
	format := c.DefaultQuery("format", "csv")
	if format != "csv" && format != "xlsx" {
		invalidRequest(c, fmt.Errorf("unsupported export format %q", format))
		return
	}

	entries, err := h.leaderboardService.GetLeaderboard(c.Request.Context(), gameCode)
	if err != nil {
		handleError(c, err, leaderboardErrors)
		return
	}

	filename := "leaderboard_" + unsafeFilenameChars.ReplaceAllString(gameCode, "_")
	switch format {
	case "xlsx":
		h.exportXLSX(c, entries, filename)
	default:
		h.exportCSV(c, entries, filename)
	}
}

func (h *LeaderboardHandler) exportCSV(c *gin.Context, entries []entity.LeaderboardEntry, filename string) {
	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s.csv\"", filename))

	// BOM для корректного отображения UTF-8 в Excel
	c.Writer.Write([]byte{0xEF, 0xBB, 0xBF})

	writer := csv.NewWriter(c.Writer)
	defer writer.Flush()

	writer.Write([]string{"Rank", "Name", "Score"})
	for i, e := range entries {
		writer.Write([]string{strconv.Itoa(i + 1), sanitizeForExcel(e.Name), strconv.FormatInt(e.Score, 10)})
	}
}

func (h *LeaderboardHandler) exportXLSX(c *gin.Context, entries []entity.LeaderboardEntry, filename string) {
	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Leaderboard"
	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		log.Printf("[LeaderboardHandler] Ошибка переименования листа: %v", err)
	}

	sw, err := f.NewStreamWriter(sheetName)
	if err != nil {
		log.Printf("[LeaderboardHandler] Ошибка создания StreamWriter: %v", err)
		respondError(c, http.StatusInternalServerError, "Failed to create Excel file")
		return
	}

	if err := sw.SetRow("A1", []interface{}{"Rank", "Name", "Score"}); err != nil {
		log.Printf("[LeaderboardHandler] Ошибка записи заголовков: %v", err)
	}
	for i, e := range entries {
		cell := fmt.Sprintf("A%d", i+2)
		if err := sw.SetRow(cell, []interface{}{i + 1, sanitizeForExcel(e.Name), e.Score}); err != nil {
			log.Printf("[LeaderboardHandler] Ошибка записи строки %d: %v", i+2, err)
		}
	}
	if err := sw.Flush(); err != nil {
		log.Printf("[LeaderboardHandler] Ошибка при Flush: %v", err)
		respondError(c, http.StatusInternalServerError, "Failed to create Excel file")
		return
	}

	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s.xlsx\"", filename))
	if err := f.Write(c.Writer); err != nil {
		log.Printf("[LeaderboardHandler] Ошибка записи Excel в response: %v", err)
	}
}

// sanitizeForExcel экранирует значения, которые Excel/LibreOffice принял бы за формулу
func sanitizeForExcel(s string) string {
	if len(s) == 0 {
		return s
	}
	switch s[0] {
	case '=', '+', '-', '@', '\t', '\r':
		return "'" + s
	}
	return s
}

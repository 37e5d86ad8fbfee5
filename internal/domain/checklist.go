package domain

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
)

// ChecklistExportFilename is the download name for the checked-actions CSV.
const ChecklistExportFilename = "my_climate_actions.csv"

// checklistHeader is the single CSV column header ("chosen actions").
const checklistHeader = "실천 항목"

// ClimateActions is the fixed climate-action checklist, in display order.
var ClimateActions = []string{
	"🌱 불필요한 전등 끄기",
	"🚲 대중교통·자전거 이용",
	"🥤 일회용품 줄이기",
	"🍽️ 음식물 쓰레기 줄이기",
	"♻️ 철저한 분리배출",
	"🛍️ 친환경 제품 사용",
	"🌍 환경 동아리 참여",
	"🏖️ 해안/하천 정화 활동",
	"🌳 나무 심기",
	"📢 기후 캠페인 참여",
}

// ErrNoActionsChecked is returned when an export is requested with nothing
// checked. The page never offers the download in that state, so hitting it
// means a hand-built request.
var ErrNoActionsChecked = errors.New("no actions checked")

// ActionByIndex resolves a zero-based checkbox index to its label.
func ActionByIndex(i int) (string, error) {
	if i < 0 || i >= len(ClimateActions) {
		return "", fmt.Errorf("action index %d out of range", i)
	}
	return ClimateActions[i], nil
}

// ExportChecklistCSV renders the checked actions as UTF-8 CSV: a 실천 항목
// header row, then one row per action in selection order.
func ExportChecklistCSV(checked []string) ([]byte, error) {
	if len(checked) == 0 {
		return nil, ErrNoActionsChecked
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write([]string{checklistHeader}); err != nil {
		return nil, fmt.Errorf("export checklist: %w", err)
	}
	for _, action := range checked {
		if err := w.Write([]string{action}); err != nil {
			return nil, fmt.Errorf("export checklist: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("export checklist: %w", err)
	}
	return buf.Bytes(), nil
}

package keyboard

import (
	"fmt"

	"github.com/go-telegram/bot/models"
)

// PaginationButtons создаёт ряд кнопок пагинации.
// currentPage с нуля, hasNext известен заранее, потому что общее число страниц не считаем.
func PaginationButtons(prefix string, currentPage int, hasNext bool) []models.InlineKeyboardButton {
	if currentPage == 0 && !hasNext {
		return nil
	}

	var buttons []models.InlineKeyboardButton

	if currentPage > 0 {
		buttons = append(buttons, Button("⬅️", fmt.Sprintf("%s%d", prefix, currentPage-1)))
	}

	buttons = append(buttons, Button(fmt.Sprintf("📄 %d", currentPage+1), "noop"))

	if hasNext {
		buttons = append(buttons, Button("➡️", fmt.Sprintf("%s%d", prefix, currentPage+1)))
	}

	return buttons
}

// AddPagination добавляет пагинацию к builder
func (b *Builder) AddPagination(prefix string, currentPage int, hasNext bool) *Builder {
	return b.Row(PaginationButtons(prefix, currentPage, hasNext)...)
}

// StepPagination кнопки "назад/вперёд" для навигации по неделям или дням.
// Значения подставляются в prefix как есть.
func StepPagination(prefix, prevLabel, prev, nextLabel, next string) []models.InlineKeyboardButton {
	return []models.InlineKeyboardButton{
		Button("◀️ "+prevLabel, prefix+prev),
		Button(nextLabel+" ▶️", prefix+next),
	}
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package messages holds the user-facing strings of the catalog UI in every
// supported language, plus locale-aware timestamp formatting.
package messages

import (
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// ID identifies a translatable message.
type ID string

const (
	AppName ID = "app.name"

	LoadFailed    ID = "load.failed"
	SearchFailed  ID = "search.failed"
	TitleRequired ID = "save.title_required"
	Added         ID = "save.added"
	Updated       ID = "save.updated"
	SaveFailed    ID = "save.failed"
	DetailsFailed ID = "details.failed"
	DeleteConfirm ID = "delete.confirm"
	Deleted       ID = "delete.done"
	DeleteFailed  ID = "delete.failed"
	Exported      ID = "export.done"
	ExportFailed  ID = "export.failed"

	NoResults      ID = "list.no_results"
	AuthorsMissing ID = "card.authors_missing"
	JournalMissing ID = "card.journal_missing"
	MetaVolume     ID = "card.volume"
	MetaIssue      ID = "card.issue"
	MetaPages      ID = "card.pages"

	AddDialogTitle  ID = "dialog.add"
	EditDialogTitle ID = "dialog.edit"

	LabelTitle    ID = "label.title"
	LabelAuthors  ID = "label.authors"
	LabelJournal  ID = "label.journal"
	LabelYear     ID = "label.year"
	LabelVolume   ID = "label.volume"
	LabelIssue    ID = "label.issue"
	LabelPages    ID = "label.pages"
	LabelDOI      ID = "label.doi"
	LabelURL      ID = "label.url"
	LabelKeywords ID = "label.keywords"
	LabelAbstract ID = "label.abstract"
	LabelCreated  ID = "label.created"
	LabelUpdated  ID = "label.updated"

	NotSpecified       ID = "value.not_specified"
	NotSpecifiedPlural ID = "value.not_specified_plural"
	InvalidDate        ID = "value.invalid_date"

	StatTotal    ID = "stats.total"
	StatRecent   ID = "stats.recent"
	StatJournals ID = "stats.journals"
	StatAvgYear  ID = "stats.avg_year"
)

var translations = map[language.Tag]map[ID]string{
	language.English: {
		AppName:            "Citation catalog",
		LoadFailed:         "Failed to load citations",
		SearchFailed:       "Failed to search citations",
		TitleRequired:      "Title is required",
		Added:              "Citation added",
		Updated:            "Citation updated",
		SaveFailed:         "Failed to save citation",
		DetailsFailed:      "Failed to load citation details",
		DeleteConfirm:      "Are you sure you want to delete this citation?",
		Deleted:            "Citation deleted",
		DeleteFailed:       "Failed to delete citation",
		Exported:           "Citations exported as %s",
		ExportFailed:       "Failed to export citations as %s",
		NoResults:          "No citations found",
		AuthorsMissing:     "Authors not specified",
		JournalMissing:     "Journal not specified",
		MetaVolume:         "Vol. %s",
		MetaIssue:          "No. %s",
		MetaPages:          "pp. %s",
		AddDialogTitle:     "Add new citation",
		EditDialogTitle:    "Edit citation",
		LabelTitle:         "Title",
		LabelAuthors:       "Authors",
		LabelJournal:       "Journal",
		LabelYear:          "Year",
		LabelVolume:        "Volume",
		LabelIssue:         "Issue",
		LabelPages:         "Pages",
		LabelDOI:           "DOI",
		LabelURL:           "URL",
		LabelKeywords:      "Keywords",
		LabelAbstract:      "Abstract",
		LabelCreated:       "Created",
		LabelUpdated:       "Updated",
		NotSpecified:       "Not specified",
		NotSpecifiedPlural: "Not specified",
		InvalidDate:        "Invalid Date",
		StatTotal:          "Total",
		StatRecent:         "This month",
		StatJournals:       "Journals",
		StatAvgYear:        "Avg. year",
	},
	language.Russian: {
		AppName:            "Система цитирований",
		LoadFailed:         "Ошибка загрузки цитирований",
		SearchFailed:       "Ошибка поиска цитирований",
		TitleRequired:      "Заголовок обязателен",
		Added:              "Цитирование успешно добавлено",
		Updated:            "Цитирование успешно обновлено",
		SaveFailed:         "Ошибка сохранения цитирования",
		DetailsFailed:      "Ошибка загрузки деталей цитирования",
		DeleteConfirm:      "Вы уверены, что хотите удалить это цитирование?",
		Deleted:            "Цитирование успешно удалено",
		DeleteFailed:       "Ошибка удаления цитирования",
		Exported:           "Цитирования экспортированы в формате %s",
		ExportFailed:       "Ошибка экспорта цитирований в формате %s",
		NoResults:          "Цитирования не найдены",
		AuthorsMissing:     "Авторы не указаны",
		JournalMissing:     "Журнал не указан",
		MetaVolume:         "Т. %s",
		MetaIssue:          "№ %s",
		MetaPages:          "с. %s",
		AddDialogTitle:     "Добавить новое цитирование",
		EditDialogTitle:    "Редактировать цитирование",
		LabelTitle:         "Заголовок",
		LabelAuthors:       "Авторы",
		LabelJournal:       "Журнал",
		LabelYear:          "Год",
		LabelVolume:        "Том",
		LabelIssue:         "Номер",
		LabelPages:         "Страницы",
		LabelDOI:           "DOI",
		LabelURL:           "URL",
		LabelKeywords:      "Ключевые слова",
		LabelAbstract:      "Аннотация",
		LabelCreated:       "Создано",
		LabelUpdated:       "Обновлено",
		NotSpecified:       "Не указан",
		NotSpecifiedPlural: "Не указаны",
		InvalidDate:        "Invalid Date",
		StatTotal:          "Всего",
		StatRecent:         "За месяц",
		StatJournals:       "Журналов",
		StatAvgYear:        "Средний год",
	},
}

// timeLayouts mirrors the browser's toLocaleString output for each language.
var timeLayouts = map[language.Tag]string{
	language.English: "1/2/2006, 3:04:05 PM",
	language.Russian: "02.01.2006, 15:04:05",
}

var supported = []language.Tag{language.English, language.Russian}

var matcher = language.NewMatcher(supported)

func init() {
	for tag, msgs := range translations {
		for id, text := range msgs {
			if err := message.SetString(tag, string(id), text); err != nil {
				panic(err)
			}
		}
	}
}

// Localizer renders messages and timestamps in one language.
type Localizer struct {
	tag     language.Tag
	printer *message.Printer
}

// New returns a Localizer for the BCP 47 locale. Unknown or malformed
// locales fall back to English.
func New(locale string) *Localizer {
	tag := language.English
	if parsed, err := language.Parse(locale); err == nil {
		_, index, confidence := matcher.Match(parsed)
		if confidence != language.No {
			tag = supported[index]
		}
	}
	return &Localizer{tag: tag, printer: message.NewPrinter(tag)}
}

// Language returns the matched language tag.
func (l *Localizer) Language() language.Tag { return l.tag }

// T renders message id with args.
func (l *Localizer) T(id ID, args ...any) string {
	return l.printer.Sprintf(string(id), args...)
}

// FormatTime renders an RFC 3339 timestamp in local time using the
// language's layout. Unparseable input yields the InvalidDate message.
func (l *Localizer) FormatTime(ts string) string {
	t, err := time.Parse(time.RFC3339, ts)
	if err != nil {
		return l.T(InvalidDate)
	}
	return t.Local().Format(timeLayouts[l.tag])
}

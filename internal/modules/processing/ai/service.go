package ai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/inkwell/core/internal/models"
	"github.com/inkwell/core/internal/modules/content/category"
	"github.com/inkwell/core/internal/modules/writer/project"
	"gorm.io/gorm"
)

// promptSourceLimit caps how many attached sources feed a prompt.
const promptSourceLimit = 5

var errDocNotFound = errors.New("document not found")

type Service struct {
	db         *gorm.DB
	gen        Generator
	projects   *project.Service
	categories *category.Service
}

func NewService(db *gorm.DB, gen Generator, projects *project.Service, categories *category.Service) *Service {
	return &Service{db: db, gen: gen, projects: projects, categories: categories}
}

// writerContext is the project material gathered for one prompt.
type writerContext struct {
	project *models.ProjectModel
	bible   *models.StoryBibleModel
	memory  *models.ProjectMemoryModel
	style   *models.WritingStyleModel
	sources []models.WritingSourceModel
	doc     *models.StoryDocModel
	prevDoc *models.StoryDocModel
}

func (s *Service) NoteDraft(ctx context.Context, userID string, dto *NoteDraftDTO) (*NoteDraft, error) {
	raw, err := s.gen.GenerateStructured(ctx, buildNoteDraftPrompt(dto))
	if err != nil {
		return nil, err
	}
	var draft NoteDraft
	if err := unmarshalModelJSON(raw, &draft); err != nil {
		return nil, err
	}
	if name := strings.TrimSpace(draft.Category); name != "" {
		cat, err := s.categories.ResolveOrCreate(userID, name)
		if err != nil {
			return nil, err
		}
		if cat != nil {
			draft.Category = cat.Name
			draft.CategoryID = &cat.ID
		}
	}
	return &draft, nil
}

func (s *Service) Transcribe(ctx context.Context, mimeType string, audio []byte) (string, error) {
	raw, err := s.gen.GenerateParts(ctx, []Part{
		{Text: transcribePart},
		{MIMEType: mimeType, Data: audio},
	})
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(raw), nil
}

func (s *Service) ContinueStory(ctx context.Context, dto *ContinueStoryDTO) (string, error) {
	raw, err := s.gen.GenerateStructured(ctx, fmt.Sprintf(continueStoryPrompt, dto.Content))
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(raw), nil
}

// WriterContinue drafts the next passage and merges any reported memory
// updates into the project memory.
func (s *Service) WriterContinue(ctx context.Context, userID string, dto *WriterContinueDTO) (*WriterContinueResult, error) {
	wc, err := s.gatherContext(userID, dto.ProjectID, dto.DocID)
	if err != nil {
		return nil, err
	}
	raw, err := s.gen.GenerateStructured(ctx,
		fmt.Sprintf(writerContinuePrompt, renderContext(wc), dto.Instructions))
	if err != nil {
		return nil, err
	}
	var parsed struct {
		Takes        []string      `json:"takes"`
		MemoryUpdate *memoryUpdate `json:"memoryUpdate"`
	}
	if err := unmarshalModelJSON(raw, &parsed); err != nil {
		return nil, err
	}
	if len(parsed.Takes) == 0 {
		return nil, ErrParse
	}
	if parsed.MemoryUpdate != nil {
		if err := s.applyMemoryUpdate(userID, dto.ProjectID, parsed.MemoryUpdate); err != nil {
			return nil, err
		}
	}
	return &WriterContinueResult{Takes: parsed.Takes}, nil
}

func (s *Service) Rewrite(ctx context.Context, userID string, dto *RewriteDTO) (*RewriteResult, error) {
	wc, err := s.gatherContext(userID, dto.ProjectID, dto.DocID)
	if err != nil {
		return nil, err
	}
	raw, err := s.gen.GenerateStructured(ctx,
		fmt.Sprintf(rewritePrompt, renderContext(wc), dto.Instruction, dto.Text))
	if err != nil {
		return nil, err
	}
	var out RewriteResult
	if err := unmarshalModelJSON(raw, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Service) Outline(ctx context.Context, userID string, dto *OutlineDTO) (*OutlineResult, error) {
	wc, err := s.gatherContext(userID, dto.ProjectID, dto.DocID)
	if err != nil {
		return nil, err
	}
	raw, err := s.gen.GenerateStructured(ctx,
		fmt.Sprintf(outlinePrompt, renderContext(wc), dto.Premise, dto.Instructions))
	if err != nil {
		return nil, err
	}
	var out OutlineResult
	if err := unmarshalModelJSON(raw, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Service) Expand(ctx context.Context, userID string, dto *ExpandDTO) (*RewriteResult, error) {
	wc, err := s.gatherContext(userID, dto.ProjectID, dto.DocID)
	if err != nil {
		return nil, err
	}
	raw, err := s.gen.GenerateStructured(ctx,
		fmt.Sprintf(expandPrompt, renderContext(wc), dto.Instruction, dto.Text))
	if err != nil {
		return nil, err
	}
	var out RewriteResult
	if err := unmarshalModelJSON(raw, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Service) Consistency(ctx context.Context, userID string, dto *ConsistencyDTO) (*ConsistencyResult, error) {
	wc, err := s.gatherContext(userID, dto.ProjectID, dto.DocID)
	if err != nil {
		return nil, err
	}
	if wc.doc == nil {
		return nil, errDocNotFound
	}
	raw, err := s.gen.GenerateStructured(ctx,
		fmt.Sprintf(consistencyPrompt, renderContext(wc), wc.doc.Content))
	if err != nil {
		return nil, err
	}
	var out ConsistencyResult
	if err := unmarshalModelJSON(raw, &out); err != nil {
		return nil, err
	}
	if out.Issues == nil {
		out.Issues = []ConsistencyIssue{}
	}
	return &out, nil
}

// StyleProfile derives a style profile from the project's prose and persists
// it as the project's writing style.
func (s *Service) StyleProfile(ctx context.Context, userID string, dto *StyleProfileDTO) (*StyleProfileResult, error) {
	if _, err := s.projects.Get(userID, dto.ProjectID); err != nil {
		return nil, err
	}
	var samples []models.StoryDocModel
	err := s.db.Where("project_id = ? AND user_id = ? AND kind = ? AND content <> ''",
		dto.ProjectID, userID, models.StoryDocKindDocument).
		Order("updated_at DESC").Limit(3).Find(&samples).Error
	if err != nil {
		return nil, err
	}
	var b strings.Builder
	for _, d := range samples {
		fmt.Fprintf(&b, "### %s\n%s\n\n", d.Title, truncateRunes(d.Content, 4000))
	}

	raw, err := s.gen.GenerateStructured(ctx, fmt.Sprintf(styleProfilePrompt, b.String()))
	if err != nil {
		return nil, err
	}
	var out StyleProfileResult
	if err := unmarshalModelJSON(raw, &out); err != nil {
		return nil, err
	}

	if _, err := s.projects.UpdateStyle(userID, dto.ProjectID, &project.UpdateStyleDTO{
		Guidelines: &out.Guidelines,
		DoList:     &out.DoList,
		DontList:   &out.DontList,
		Examples:   &out.Examples,
	}); err != nil {
		return nil, err
	}
	if err := s.applyMemoryUpdate(userID, dto.ProjectID, &memoryUpdate{
		SessionSummary: "Derived a new style profile from recent chapters.",
	}); err != nil {
		return nil, err
	}
	memory, err := s.projects.GetMemory(userID, dto.ProjectID)
	if err != nil {
		return nil, err
	}
	memory.StyleGuidelines = out.Guidelines
	if err := s.db.Save(memory).Error; err != nil {
		return nil, err
	}
	return &out, nil
}

// Ask answers a question from project material: documents, sources and the
// author's recent notes.
func (s *Service) Ask(ctx context.Context, userID string, dto *AskDTO) (*AskResult, error) {
	wc, err := s.gatherContext(userID, dto.ProjectID, "")
	if err != nil {
		return nil, err
	}

	var b strings.Builder
	b.WriteString(renderContext(wc))
	var docs []models.StoryDocModel
	err = s.db.Where("project_id = ? AND user_id = ? AND kind = ? AND content <> ''",
		dto.ProjectID, userID, models.StoryDocKindDocument).
		Order("updated_at DESC").Limit(10).Find(&docs).Error
	if err != nil {
		return nil, err
	}
	for _, d := range docs {
		fmt.Fprintf(&b, "\n\n## Document: %s\n%s", d.Title, truncateRunes(d.Content, 3000))
	}
	var notes []models.NoteModel
	err = s.db.Where("user_id = ?", userID).
		Order("updated_at DESC").Limit(10).Find(&notes).Error
	if err != nil {
		return nil, err
	}
	for _, n := range notes {
		fmt.Fprintf(&b, "\n\n## Note: %s\n%s", n.Title, truncateRunes(n.Content, 1500))
	}

	raw, err := s.gen.GenerateStructured(ctx, fmt.Sprintf(askPrompt, b.String(), dto.Question))
	if err != nil {
		return nil, err
	}
	var out AskResult
	if err := unmarshalModelJSON(raw, &out); err != nil {
		return nil, err
	}
	if out.Citations == nil {
		out.Citations = []string{}
	}
	return &out, nil
}

func (s *Service) gatherContext(userID, projectID, docID string) (*writerContext, error) {
	p, err := s.projects.Get(userID, projectID)
	if err != nil {
		return nil, err
	}
	wc := &writerContext{project: p}

	var bible models.StoryBibleModel
	if err := s.firstSingleton(&bible, projectID, userID); err == nil {
		wc.bible = &bible
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	var memory models.ProjectMemoryModel
	if err := s.firstSingleton(&memory, projectID, userID); err == nil {
		wc.memory = &memory
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	var style models.WritingStyleModel
	if err := s.firstSingleton(&style, projectID, userID); err == nil {
		wc.style = &style
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	if err := s.db.Where("project_id = ? AND user_id = ?", projectID, userID).
		Order("created_at DESC").Limit(promptSourceLimit).
		Find(&wc.sources).Error; err != nil {
		return nil, err
	}

	if docID != "" {
		var d models.StoryDocModel
		err := s.db.Where("id = ? AND project_id = ? AND user_id = ?", docID, projectID, userID).
			First(&d).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, errDocNotFound
			}
			return nil, err
		}
		wc.doc = &d
		wc.prevDoc, err = s.previousSibling(&d)
		if err != nil {
			return nil, err
		}
	}
	return wc, nil
}

// previousSibling finds the nearest document before d under the same parent,
// used to keep continuations flowing from the preceding chapter.
func (s *Service) previousSibling(d *models.StoryDocModel) (*models.StoryDocModel, error) {
	q := s.db.Where("project_id = ? AND user_id = ? AND kind = ? AND sort_order < ? AND id <> ?",
		d.ProjectID, d.UserID, models.StoryDocKindDocument, d.SortOrder, d.ID)
	if d.ParentID == nil {
		q = q.Where("parent_id IS NULL")
	} else {
		q = q.Where("parent_id = ?", *d.ParentID)
	}
	var prev models.StoryDocModel
	err := q.Order("sort_order DESC").First(&prev).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &prev, nil
}

func (s *Service) firstSingleton(dest interface{}, projectID, userID string) error {
	return s.db.Where("project_id = ? AND user_id = ?", projectID, userID).First(dest).Error
}

func (s *Service) applyMemoryUpdate(userID, projectID string, update *memoryUpdate) error {
	memory, err := s.projects.GetMemory(userID, projectID)
	if err != nil {
		return err
	}
	if update.OpenThreads != nil {
		memory.OpenThreads = update.OpenThreads
	}
	if update.KeyFacts != nil {
		memory.KeyFacts = update.KeyFacts
	}
	if summary := strings.TrimSpace(update.SessionSummary); summary != "" {
		memory.SessionSummaries = append(memory.SessionSummaries, models.SessionSummary{
			CreatedOn:   time.Now().UTC().Format(time.RFC3339),
			SummaryText: summary,
		})
	}
	return s.db.Save(memory).Error
}

func renderBible(b *models.StoryBibleModel) string {
	var sb strings.Builder
	if b.Tone != "" {
		fmt.Fprintf(&sb, "Tone: %s\n", b.Tone)
	}
	if b.Rules != "" {
		fmt.Fprintf(&sb, "Rules: %s\n", b.Rules)
	}
	appendJSONList := func(label string, items []interface{}) {
		if len(items) == 0 {
			return
		}
		fmt.Fprintf(&sb, "%s: %s\n", label, compactJSON(items))
	}
	appendJSONList("Characters", b.Characters)
	appendJSONList("Locations", b.Locations)
	appendJSONList("Timeline", b.Timeline)
	appendJSONList("Glossary", b.Glossary)
	if b.Notes != "" {
		fmt.Fprintf(&sb, "Notes: %s\n", b.Notes)
	}
	return sb.String()
}

func renderMemory(m *models.ProjectMemoryModel) string {
	var sb strings.Builder
	if m.StyleGuidelines != "" {
		fmt.Fprintf(&sb, "Style guidelines: %s\n", m.StyleGuidelines)
	}
	if len(m.OpenThreads) > 0 {
		fmt.Fprintf(&sb, "Open threads: %s\n", compactJSON(m.OpenThreads))
	}
	if len(m.KeyFacts) > 0 {
		fmt.Fprintf(&sb, "Key facts: %s\n", compactJSON(m.KeyFacts))
	}
	// only the freshest summaries; older ones age out of the prompt
	summaries := m.SessionSummaries
	if len(summaries) > 3 {
		summaries = summaries[len(summaries)-3:]
	}
	for _, entry := range summaries {
		fmt.Fprintf(&sb, "Session %s: %s\n", entry.CreatedOn, entry.SummaryText)
	}
	return sb.String()
}

func renderStyle(st *models.WritingStyleModel) string {
	var sb strings.Builder
	if st.Guidelines != "" {
		fmt.Fprintf(&sb, "Guidelines: %s\n", st.Guidelines)
	}
	if len(st.DoList) > 0 {
		fmt.Fprintf(&sb, "Do: %s\n", strings.Join(st.DoList, "; "))
	}
	if len(st.DontList) > 0 {
		fmt.Fprintf(&sb, "Don't: %s\n", strings.Join(st.DontList, "; "))
	}
	if len(st.Examples) > 0 {
		fmt.Fprintf(&sb, "Examples: %s\n", strings.Join(st.Examples, " | "))
	}
	return sb.String()
}

func compactJSON(v interface{}) string {
	b, err := json.Marshal(v)
	if err != nil {
		return ""
	}
	return string(b)
}

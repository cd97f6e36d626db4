// ABOUTME: Built-in reference content: mindset lessons, quotes and brain courses.
// ABOUTME: Parsed from an embedded YAML file and upserted with stable ids so reseeding is idempotent.
package catalog

import (
	"context"
	_ "embed"
	"fmt"

	"github.com/google/uuid"
	"github.com/harperreed/recomp/internal/logging"
	"github.com/harperreed/recomp/internal/models"
	"github.com/harperreed/recomp/internal/storage"
	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var builtin []byte

// namespace scopes the name-based ids of catalog rows.
var namespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://recomp.app/catalog"))

// Catalog is the reference content shipped with RECOMP.
type Catalog struct {
	Lessons []Lesson `yaml:"lessons"`
	Quotes  []Quote  `yaml:"quotes"`
	Courses []Course `yaml:"courses"`
}

type Lesson struct {
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
	Content     string `yaml:"content"`
	UnlockDay   int    `yaml:"unlock_day"`
	OrderIndex  int    `yaml:"order_index"`
	Category    string `yaml:"category"`
	BrainRegion string `yaml:"brain_region"`
	Duration    int    `yaml:"duration"`
}

type Quote struct {
	Text     string `yaml:"text"`
	Author   string `yaml:"author"`
	Category string `yaml:"category"`
}

type Course struct {
	Title       string   `yaml:"title"`
	Description string   `yaml:"description"`
	Category    string   `yaml:"category"`
	Difficulty  string   `yaml:"difficulty"`
	Duration    int      `yaml:"duration"`
	ImageURL    string   `yaml:"image_url"`
	Modules     []Module `yaml:"modules"`
}

type Module struct {
	Title    string `yaml:"title"`
	Content  string `yaml:"content"`
	VideoURL string `yaml:"video_url"`
	Duration int    `yaml:"duration"`
}

// Builtin parses the embedded catalog.
func Builtin() (*Catalog, error) {
	return Parse(builtin)
}

// Parse decodes a catalog document and validates it.
func Parse(data []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}
	for i, l := range c.Lessons {
		if l.Title == "" || l.Content == "" {
			return nil, fmt.Errorf("lesson %d: title and content are required", i)
		}
		if l.UnlockDay < 1 {
			return nil, fmt.Errorf("lesson %q: unlock_day must be at least 1", l.Title)
		}
	}
	for i, q := range c.Quotes {
		if q.Text == "" {
			return nil, fmt.Errorf("quote %d: text is required", i)
		}
	}
	for i, co := range c.Courses {
		if co.Title == "" {
			return nil, fmt.Errorf("course %d: title is required", i)
		}
	}
	return &c, nil
}

// Counts reports how many rows a seed writes.
type Counts struct {
	Lessons int
	Quotes  int
	Courses int
	Modules int
}

// Seed upserts the catalog into store in one transaction.
func (c *Catalog) Seed(ctx context.Context, store storage.Store) (Counts, error) {
	var n Counts
	err := store.InTx(ctx, func(tx storage.Store) error {
		for _, l := range c.Lessons {
			if err := tx.UpsertMindsetLesson(ctx, l.model()); err != nil {
				return err
			}
			n.Lessons++
		}
		for _, q := range c.Quotes {
			if err := tx.UpsertQuote(ctx, q.model()); err != nil {
				return err
			}
			n.Quotes++
		}
		for i, co := range c.Courses {
			course := co.model(i)
			if err := tx.UpsertCourse(ctx, course); err != nil {
				return err
			}
			n.Courses++
			n.Modules += len(course.Modules)
		}
		return nil
	})
	if err != nil {
		return Counts{}, fmt.Errorf("seed catalog: %w", err)
	}

	logging.Info("catalog seeded", "lessons", n.Lessons, "quotes", n.Quotes, "courses", n.Courses)
	return n, nil
}

// LessonID is the stable id of the lesson unlocking on day with the given title.
func LessonID(day int, title string) uuid.UUID {
	return uuid.NewSHA1(namespace, []byte(fmt.Sprintf("lesson/%d/%s", day, title)))
}

// QuoteID is the stable id of a quote.
func QuoteID(text string) uuid.UUID {
	return uuid.NewSHA1(namespace, []byte("quote/"+text))
}

// CourseID is the stable id of a course.
func CourseID(title string) uuid.UUID {
	return uuid.NewSHA1(namespace, []byte("course/"+title))
}

func (l Lesson) model() *models.MindsetLesson {
	return &models.MindsetLesson{
		ID:          LessonID(l.UnlockDay, l.Title),
		Title:       l.Title,
		Description: optional(l.Description),
		Content:     l.Content,
		UnlockDay:   l.UnlockDay,
		OrderIndex:  l.OrderIndex,
		Category:    optional(l.Category),
		BrainRegion: optional(l.BrainRegion),
		Duration:    l.Duration,
	}
}

func (q Quote) model() *models.Quote {
	return &models.Quote{
		ID:       QuoteID(q.Text),
		Text:     q.Text,
		Author:   optional(q.Author),
		Category: optional(q.Category),
		IsActive: true,
	}
}

func (co Course) model(order int) *models.BrainCourse {
	id := CourseID(co.Title)
	course := &models.BrainCourse{
		ID:          id,
		Title:       co.Title,
		Description: optional(co.Description),
		Category:    optional(co.Category),
		Difficulty:  optional(co.Difficulty),
		Duration:    co.Duration,
		ImageURL:    optional(co.ImageURL),
		OrderIndex:  order,
		IsActive:    true,
	}
	for i, m := range co.Modules {
		course.Modules = append(course.Modules, models.CourseModule{
			ID:         uuid.NewSHA1(id, []byte(fmt.Sprintf("module/%d", i))),
			CourseID:   id,
			Title:      m.Title,
			Content:    m.Content,
			VideoURL:   optional(m.VideoURL),
			Duration:   m.Duration,
			OrderIndex: i,
		})
	}
	return course
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

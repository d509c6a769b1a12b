package menu

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	"menugen/internal/imagegen"
	"menugen/internal/llm"

	"go.uber.org/zap"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Store persists the cache document.
type Store interface {
	Load(ctx context.Context) (*Document, bool)
	Save(ctx context.Context, doc *Document) error
}

// Generator produces dish data for one category.
type Generator interface {
	Generate(ctx context.Context, category string) (*llm.Generation, error)
}

// Synthesizer renders one dish image and returns its relative path.
type Synthesizer interface {
	Synthesize(ctx context.Context, prompt, title string) (string, error)
}

type Service struct {
	store     Store
	generator Generator
	images    Synthesizer
	logger    *zap.Logger

	// single writer for load -> save within this process
	mu sync.Mutex
}

func NewService(
	store Store,
	generator Generator,
	images Synthesizer,
	logger *zap.Logger,
) *Service {
	return &Service{
		store:     store,
		generator: generator,
		images:    images,
		logger:    logger,
	}
}

// ImageTask is a deferred image render for one planned dish.
type ImageTask struct {
	Category string
	Index    int
	Prompt   string
	Title    string
}

// Plan is the menu structure produced by text generation, before any
// image has been rendered. Dish Img fields are empty until materialized.
type Plan struct {
	Menu  Menu
	Tasks []ImageTask
}

// --------------------------------------------------
// Menu (cache check -> generate -> persist)
// --------------------------------------------------

// Menu returns the cached menu when one exists, otherwise generates the whole
// menu, merges it into the cached document and saves it.
//
// If only the save fails, the built menu is returned together with a
// *CacheWriteError.
func (s *Service) Menu(ctx context.Context) (Menu, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, ok := s.store.Load(ctx)
	if ok && doc.HasMenu() {
		s.logger.Debug("menu served from cache", zap.Int("categories", len(doc.Menu)))
		return doc.Menu, nil
	}

	plan, err := s.Plan(ctx)
	if err != nil {
		return nil, err
	}

	menu, err := s.Materialize(ctx, plan)
	if err != nil {
		return nil, err
	}

	if !ok || doc == nil {
		doc = &Document{}
	}
	doc.Menu = menu

	if err := s.store.Save(ctx, doc); err != nil {
		s.logger.Warn("menu generated but not cached", zap.Error(err))
		return menu, &CacheWriteError{Err: err}
	}

	s.logger.Info("menu generated and cached", zap.Int("categories", len(menu)))
	return menu, nil
}

// --------------------------------------------------
// Plan (text generation only)
// --------------------------------------------------

// Plan asks the generator for every category in order and lays out the
// dishes. Categories whose title and ingredient counts disagree are skipped.
func (s *Service) Plan(ctx context.Context) (*Plan, error) {
	plan := &Plan{Menu: make(Menu)}
	titler := cases.Title(language.English)

	for _, category := range Categories {
		gen, err := s.generator.Generate(ctx, category)
		if err != nil {
			return nil, err
		}

		if len(gen.DishTitles) != len(gen.Ingredients) {
			s.logger.Warn("skipping category",
				zap.String("category", category),
				zap.Int("titles", len(gen.DishTitles)),
				zap.Int("ingredients", len(gen.Ingredients)),
				zap.Error(ErrCountMismatch),
			)
			continue
		}

		dishes := make([]Dish, 0, len(gen.DishTitles))
		for i, title := range gen.DishTitles {
			price, err := priceAt(gen.Prices, i)
			if err != nil {
				return nil, &llm.GenerationParseError{Category: category, Err: err}
			}

			dishes = append(dishes, Dish{
				Dish:        title,
				Ingredients: strings.Join(gen.Ingredients[i], ", "),
				Price:       price,
			})

			prompt := title
			if i < len(gen.ImagePrompts) && gen.ImagePrompts[i] != "" {
				prompt = gen.ImagePrompts[i]
			}

			plan.Tasks = append(plan.Tasks, ImageTask{
				Category: category,
				Index:    i,
				Prompt:   prompt,
				Title:    fmt.Sprintf("%s-%d", category, i),
			})
		}

		plan.Menu[Key(category)] = Category{
			Name: titler.String(category),
			Data: dishes,
		}
	}

	return plan, nil
}

func priceAt(prices []json.RawMessage, i int) (Price, error) {
	if i >= len(prices) {
		return StringPrice(""), nil
	}
	var p Price
	if err := p.UnmarshalJSON(prices[i]); err != nil {
		return Price{}, err
	}
	return p, nil
}

// --------------------------------------------------
// Materialize (image rendering)
// --------------------------------------------------

// Materialize runs the plan's image tasks one at a time and fills in the image
// paths. A dish whose render produced no image is dropped from its category.
func (s *Service) Materialize(ctx context.Context, plan *Plan) (Menu, error) {
	dropped := make(map[string]map[int]bool)

	for _, task := range plan.Tasks {
		key := Key(task.Category)

		path, err := s.images.Synthesize(ctx, task.Prompt, task.Title)
		if errors.Is(err, imagegen.ErrNoArtifact) {
			s.logger.Warn("dropping dish without image",
				zap.String("title", task.Title),
				zap.String("dish", plan.Menu[key].Data[task.Index].Dish),
			)
			if dropped[key] == nil {
				dropped[key] = make(map[int]bool)
			}
			dropped[key][task.Index] = true
			continue
		}
		if err != nil {
			return nil, err
		}

		plan.Menu[key].Data[task.Index].Img = path
	}

	out := make(Menu, len(plan.Menu))
	for key, cat := range plan.Menu {
		if len(dropped[key]) == 0 {
			out[key] = cat
			continue
		}

		kept := make([]Dish, 0, len(cat.Data))
		for i, d := range cat.Data {
			if !dropped[key][i] {
				kept = append(kept, d)
			}
		}
		out[key] = Category{Name: cat.Name, Data: kept}
	}

	return out, nil
}

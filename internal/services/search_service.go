package services

import (
	"strings"

	"portales/internal/models"
	"portales/internal/repositories"
)

// searchPreviewLimit caps each section of an unscoped search.
const searchPreviewLimit = 5

// SearchService runs substring search across portals, users and
// categories, plus tag listing and autocomplete suggestions.
type SearchService struct {
	portalRepo      repositories.PortalRepository
	userRepo        repositories.UserRepository
	categoryRepo    repositories.CategoryRepository
	tagRepo         repositories.TagRepository
	portalPresenter *PortalPresenter
	userPresenter   *UserPresenter
}

// NewSearchService creates a new SearchService.
func NewSearchService(
	portalRepo repositories.PortalRepository,
	userRepo repositories.UserRepository,
	categoryRepo repositories.CategoryRepository,
	tagRepo repositories.TagRepository,
	portalPresenter *PortalPresenter,
	userPresenter *UserPresenter,
) *SearchService {
	return &SearchService{
		portalRepo:      portalRepo,
		userRepo:        userRepo,
		categoryRepo:    categoryRepo,
		tagRepo:         tagRepo,
		portalPresenter: portalPresenter,
		userPresenter:   userPresenter,
	}
}

// Search runs a query scoped to one entity type, or across all of them.
// Unscoped searches return up to five results per section without
// pagination; scoped searches paginate their single section. An unknown
// scope yields no sections at all. Sections sit at the top of the
// response envelope, not under a wrapper key.
func (s *SearchService) Search(query, scope string, page, perPage int) (map[string]interface{}, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, validationError("search parameter 'q' is required")
	}

	results := map[string]interface{}{}

	if scope == "all" || scope == "portals" {
		if scope == "portals" {
			portals, pg, err := s.portalRepo.SearchPage(query, page, perPage)
			if err != nil {
				return nil, err
			}
			dicts, err := s.portalPresenter.Many(portals)
			if err != nil {
				return nil, err
			}
			results["portals"] = dicts
			results["pagination"] = paginationDict(pg)
		} else {
			portals, err := s.portalRepo.SearchTop(query, searchPreviewLimit)
			if err != nil {
				return nil, err
			}
			dicts, err := s.portalPresenter.Many(portals)
			if err != nil {
				return nil, err
			}
			results["portals"] = dicts
		}
	}

	if scope == "all" || scope == "users" {
		if scope == "users" {
			users, pg, err := s.userRepo.SearchPage(query, page, perPage)
			if err != nil {
				return nil, err
			}
			dicts, err := s.userPresenter.Many(users)
			if err != nil {
				return nil, err
			}
			results["users"] = dicts
			results["pagination"] = paginationDict(pg)
		} else {
			users, err := s.userRepo.SearchTop(query, searchPreviewLimit)
			if err != nil {
				return nil, err
			}
			dicts, err := s.userPresenter.Many(users)
			if err != nil {
				return nil, err
			}
			results["users"] = dicts
		}
	}

	if scope == "all" || scope == "categories" {
		if scope == "categories" {
			categories, pg, err := s.categoryRepo.SearchPage(query, page, perPage)
			if err != nil {
				return nil, err
			}
			dicts, err := s.categorySearchDicts(categories)
			if err != nil {
				return nil, err
			}
			results["categories"] = dicts
			results["pagination"] = paginationDict(pg)
		} else {
			categories, err := s.categoryRepo.SearchTop(query, searchPreviewLimit)
			if err != nil {
				return nil, err
			}
			dicts, err := s.categorySearchDicts(categories)
			if err != nil {
				return nil, err
			}
			results["categories"] = dicts
		}
	}

	return results, nil
}

// Suggestions returns autocomplete candidates for a prefix: portal titles
// first, then tag names filling the remainder.
func (s *SearchService) Suggestions(query string, limit int) (map[string]interface{}, error) {
	query = strings.TrimSpace(query)
	if limit <= 0 {
		limit = 10
	}

	suggestions := []string{}
	if query != "" {
		titles, err := s.portalRepo.TitlesByPrefix(query, limit)
		if err != nil {
			return nil, err
		}
		suggestions = append(suggestions, titles...)

		if remaining := limit - len(suggestions); remaining > 0 {
			names, err := s.tagRepo.NamesByPrefix(query, remaining)
			if err != nil {
				return nil, err
			}
			suggestions = append(suggestions, names...)
		}
	}
	if len(suggestions) > limit {
		suggestions = suggestions[:limit]
	}

	return map[string]interface{}{"suggestions": suggestions}, nil
}

// ListTags returns tags, either alphabetically or by how many portals
// carry them.
func (s *SearchService) ListTags(trending bool, limit int) (map[string]interface{}, error) {
	if limit <= 0 {
		limit = 50
	}
	tags, err := s.tagRepo.List(trending, limit)
	if err != nil {
		return nil, err
	}

	dicts := make([]map[string]interface{}, 0, len(tags))
	for i := range tags {
		dicts = append(dicts, tagDict(&tags[i]))
	}
	return map[string]interface{}{"tags": dicts}, nil
}

func (s *SearchService) categorySearchDicts(categories []models.Category) ([]map[string]interface{}, error) {
	ids := make([]uint, 0, len(categories))
	for _, category := range categories {
		ids = append(ids, category.ID)
	}
	counts, err := s.categoryRepo.PortalCounts(ids)
	if err != nil {
		return nil, err
	}

	dicts := make([]map[string]interface{}, 0, len(categories))
	for i := range categories {
		dicts = append(dicts, categoryDict(&categories[i], counts[categories[i].ID]))
	}
	return dicts, nil
}

package postgres

import (
	"context"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"heritage-archive/domain/models"
	"heritage-archive/domain/repositories"
	"heritage-archive/pkg/apperror"
)

type PersonRepositoryImpl struct {
	db *gorm.DB
}

func NewPersonRepository(db *gorm.DB) repositories.PersonRepository {
	return &PersonRepositoryImpl{db: db}
}

func (r *PersonRepositoryImpl) Create(ctx context.Context, person *models.Person) error {
	if err := r.db.WithContext(ctx).Create(person).Error; err != nil {
		return apperror.Store("failed to create person", err)
	}
	return nil
}

func (r *PersonRepositoryImpl) GetByID(ctx context.Context, id string) (*models.Person, error) {
	var person models.Person
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&person).Error
	if err != nil {
		return nil, storeError(err, "person", id)
	}
	return &person, nil
}

func (r *PersonRepositoryImpl) GetByIDs(ctx context.Context, ids []string) ([]models.Person, error) {
	persons := make([]models.Person, 0, len(ids))
	if len(ids) == 0 {
		return persons, nil
	}
	err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&persons).Error
	if err != nil {
		return nil, apperror.Store("failed to load persons", err)
	}
	return persons, nil
}

func (r *PersonRepositoryImpl) List(ctx context.Context, filter models.PersonFilter) ([]models.Person, error) {
	var persons []models.Person
	err := r.filtered(ctx, filter).
		Order(orderClause(filter.Sort)).
		Find(&persons).Error
	if err != nil {
		return nil, apperror.Store("failed to list persons", err)
	}
	return persons, nil
}

func (r *PersonRepositoryImpl) GetChildren(ctx context.Context, parentID string, status models.PersonStatus) ([]models.Person, error) {
	var persons []models.Person
	query := r.db.WithContext(ctx).Where("father_id = ? OR mother_id = ?", parentID, parentID)
	if status != "" {
		query = query.Where("status = ?", status)
	}
	if err := query.Order("name ASC").Find(&persons).Error; err != nil {
		return nil, apperror.Store("failed to load children", err)
	}
	return persons, nil
}

func (r *PersonRepositoryImpl) Update(ctx context.Context, id string, fields map[string]interface{}, expectedVersion *int) (*models.Person, error) {
	updates := make(map[string]interface{}, len(fields)+2)
	for column, value := range fields {
		updates[column] = value
	}
	updates["version"] = gorm.Expr("version + 1")
	updates["updated_date"] = time.Now()

	query := r.db.WithContext(ctx).Model(&models.Person{}).Where("id = ?", id)
	if expectedVersion != nil {
		query = query.Where("version = ?", *expectedVersion)
	}

	result := query.Updates(updates)
	if result.Error != nil {
		return nil, apperror.Store("failed to update person", result.Error)
	}

	if result.RowsAffected == 0 {
		// Either the row is gone or the version moved on.
		current, err := r.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		return nil, apperror.Conflict(fmt.Sprintf("person %s was modified concurrently (current version %d)", id, current.Version))
	}

	return r.GetByID(ctx, id)
}

// Delete removes the person together with its comments. The foreign key
// cascades on Postgres; the explicit delete covers stores that do not enforce it.
func (r *PersonRepositoryImpl) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("member_id = ?", id).Delete(&models.Comment{}).Error; err != nil {
			return apperror.Store("failed to delete person comments", err)
		}

		result := tx.Where("id = ?", id).Delete(&models.Person{})
		if result.Error != nil {
			return apperror.Store("failed to delete person", result.Error)
		}
		if result.RowsAffected == 0 {
			return apperror.NotFound(fmt.Sprintf("person %s not found", id))
		}
		return nil
	})
}

func (r *PersonRepositoryImpl) Count(ctx context.Context, filter models.PersonFilter) (int64, error) {
	var count int64
	if err := r.filtered(ctx, filter).Count(&count).Error; err != nil {
		return 0, apperror.Store("failed to count persons", err)
	}
	return count, nil
}

func (r *PersonRepositoryImpl) filtered(ctx context.Context, filter models.PersonFilter) *gorm.DB {
	query := r.db.WithContext(ctx).Model(&models.Person{})

	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.CreatedByID != "" {
		query = query.Where("created_by_id = ?", filter.CreatedByID)
	}
	if search := strings.TrimSpace(filter.Search); search != "" {
		like := "%" + escapeLike(strings.ToLower(search)) + "%"
		query = query.Where(
			`LOWER(name) LIKE ? ESCAPE '\' OR LOWER(COALESCE(nickname, '')) LIKE ? ESCAPE '\' OR LOWER(COALESCE(birth_place, '')) LIKE ? ESCAPE '\'`,
			like, like, like,
		)
	}
	if filter.HasStory {
		query = query.Where("life_story IS NOT NULL AND life_story <> ''")
	}
	if filter.HasPhoto {
		query = query.Where("image_url IS NOT NULL AND image_url <> ''")
	}

	return query
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// escapeLike makes user input match literally inside a LIKE pattern.
func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

func orderClause(sort models.PersonSort) string {
	switch sort {
	case models.SortByNameDesc:
		return "name DESC"
	case models.SortByCreatedDesc:
		return "created_date DESC"
	case models.SortByCreatedAsc:
		return "created_date ASC"
	default:
		return "name ASC"
	}
}

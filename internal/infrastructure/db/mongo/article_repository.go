package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/blogcms/admin-api/internal/core/domain"
)

const articlesCollection = "articles"

type ArticleRepository struct {
	db   *mongo.Database
	coll *mongo.Collection
}

func NewArticleRepository(db *mongo.Database) *ArticleRepository {
	return &ArticleRepository{db: db, coll: db.Collection(articlesCollection)}
}

type mongoArticle struct {
	ID               int64     `bson:"_id"`
	Title            string    `bson:"title"`
	Content          string    `bson:"content"`
	IsPublished      bool      `bson:"is_published"`
	AuthorID         int64     `bson:"author_id,omitempty"`
	LastModifiedByID int64     `bson:"last_modified_by_id,omitempty"`
	CreatedAt        time.Time `bson:"created_at"`
	UpdatedAt        time.Time `bson:"updated_at"`
}

func toMongoArticle(a *domain.Article) mongoArticle {
	return mongoArticle{
		ID:               a.ID,
		Title:            a.Title,
		Content:          a.Content,
		IsPublished:      a.IsPublished,
		AuthorID:         a.AuthorID,
		LastModifiedByID: a.LastModifiedByID,
		CreatedAt:        a.CreatedAt.UTC(),
		UpdatedAt:        a.UpdatedAt.UTC(),
	}
}

func (ma mongoArticle) toDomain() *domain.Article {
	return &domain.Article{
		ID:               ma.ID,
		Title:            ma.Title,
		Content:          ma.Content,
		IsPublished:      ma.IsPublished,
		AuthorID:         ma.AuthorID,
		LastModifiedByID: ma.LastModifiedByID,
		CreatedAt:        ma.CreatedAt.UTC(),
		UpdatedAt:        ma.UpdatedAt.UTC(),
	}
}

func (r *ArticleRepository) FindByID(ctx context.Context, id int64) (*domain.Article, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *ArticleRepository) FindByTitle(ctx context.Context, title string) (*domain.Article, error) {
	return r.findOne(ctx, bson.M{"title": title})
}

func (r *ArticleRepository) findOne(ctx context.Context, filter bson.M) (*domain.Article, error) {
	var ma mongoArticle
	if err := r.coll.FindOne(ctx, filter).Decode(&ma); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrArticleNotFound
		}
		return nil, fmt.Errorf("find article: %w", err)
	}
	return ma.toDomain(), nil
}

func (r *ArticleRepository) FindAll(ctx context.Context) ([]*domain.Article, error) {
	return r.find(ctx, bson.M{})
}

func (r *ArticleRepository) FindByAuthor(ctx context.Context, authorID int64) ([]*domain.Article, error) {
	return r.find(ctx, bson.M{"author_id": authorID})
}

func (r *ArticleRepository) FindPublished(ctx context.Context) ([]*domain.Article, error) {
	return r.find(ctx, bson.M{"is_published": true})
}

// find returns matching articles newest first, ties broken by id descending.
func (r *ArticleRepository) find(ctx context.Context, filter bson.M) ([]*domain.Article, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}})
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("list articles: %w", err)
	}
	defer cursor.Close(ctx)

	var articles []*domain.Article
	for cursor.Next(ctx) {
		var ma mongoArticle
		if err := cursor.Decode(&ma); err != nil {
			return nil, fmt.Errorf("decode article: %w", err)
		}
		articles = append(articles, ma.toDomain())
	}
	return articles, cursor.Err()
}

// Save upserts the article. A zero id allocates the next sequence value and
// writes it back into the entity.
func (r *ArticleRepository) Save(ctx context.Context, article *domain.Article) error {
	if article.ID == 0 {
		id, err := nextSequence(ctx, r.db, articlesCollection)
		if err != nil {
			return err
		}
		article.ID = id
	}

	_, err := r.coll.ReplaceOne(
		ctx,
		bson.M{"_id": article.ID},
		toMongoArticle(article),
		options.Replace().SetUpsert(true),
	)
	if err != nil {
		return fmt.Errorf("save article: %w", err)
	}
	return nil
}

func (r *ArticleRepository) Remove(ctx context.Context, id int64) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("remove article: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrArticleNotFound
	}
	return nil
}

// EnsureIndexes creates the query indexes used by the list operations.
func (r *ArticleRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "author_id", Value: 1}, {Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "is_published", Value: 1}, {Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "title", Value: 1}}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexes)
	return err
}

package repository

import "context"

// ArticleRepository はWebページから本文を取得するインターフェース
type ArticleRepository interface {
	FetchArticleText(ctx context.Context, url string) (string, error)
}

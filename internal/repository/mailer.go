package repository

import "context"

// メールテンプレートに渡すパラメータ
type TemplateParams map[string]string

// トランザクションメールの中継先
type Mailer interface {
	Send(ctx context.Context, params TemplateParams) error
}

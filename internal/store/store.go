// Package store は登録済みアカウントをメモリ上で管理します。
// 永続化は行わず、プロセス再起動で内容は失われます。
package store

import (
	"errors"
	"sync"
)

// ErrDuplicateEmail は同じメールアドレスのアカウントが既に存在する場合に返されます。
var ErrDuplicateEmail = errors.New("email is already registered")

// Account は登録済みアカウントを表します。
type Account struct {
	ID             int
	Username       string
	Email          string
	PasswordDigest []byte // bcryptハッシュ。レスポンスには含めない
}

// SafeView はパスワードダイジェストを除いたアカウント表現です。
// 信頼境界の外へ出るアカウント情報は必ずこの型を経由します。
type SafeView struct {
	ID       int    `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// SafeView は機微情報を取り除いた表現を返します。
func (a Account) SafeView() SafeView {
	return SafeView{
		ID:       a.ID,
		Username: a.Username,
		Email:    a.Email,
	}
}

// Store はアカウントの登録と検索を提供します。
// Ginはハンドラーを並行実行するため、Insert の一意性検査はロックで直列化します。
type Store struct {
	mu       sync.Mutex
	accounts []Account
	nextID   int
}

// New は空の Store を作成します。
func New() *Store {
	return &Store{nextID: 1}
}

// Insert はアカウントを登録し、採番済みのアカウントを返します。
// 同じメールアドレスが既に存在する場合は ErrDuplicateEmail を返します。
func (s *Store) Insert(username, email string, passwordDigest []byte) (Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, a := range s.accounts {
		if a.Email == email {
			return Account{}, ErrDuplicateEmail
		}
	}

	account := Account{
		ID:             s.nextID,
		Username:       username,
		Email:          email,
		PasswordDigest: passwordDigest,
	}
	s.nextID++
	s.accounts = append(s.accounts, account)
	return account, nil
}

// FindByEmail はメールアドレスでアカウントを検索します。
func (s *Store) FindByEmail(email string) (Account, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, a := range s.accounts {
		if a.Email == email {
			return a, true
		}
	}
	return Account{}, false
}

// FindByID はIDでアカウントを検索します。
func (s *Store) FindByID(id int) (Account, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, a := range s.accounts {
		if a.ID == id {
			return a, true
		}
	}
	return Account{}, false
}

// Count は登録済みアカウント数を返します。
func (s *Store) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.accounts)
}

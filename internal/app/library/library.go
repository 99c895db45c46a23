// Package library 書籍目錄：新增、依書名移除與搜尋、列出
package library

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/JoeShih716/go-account-desk/internal/collection"
)

// ErrBookNotFound 找不到書
var ErrBookNotFound = errors.New("book not found")

// Item 目錄中的一本書 (紙本或電子書)
type Item interface {
	Title() string
	Info() string
}

// Book 紙本書
type Book struct {
	title  string
	author string
	year   int
}

func NewBook(title, author string, year int) *Book {
	return &Book{title: title, author: author, year: year}
}

func (b *Book) Title() string {
	return b.title
}

// Info 格式: <title> by <author>, <year>
func (b *Book) Info() string {
	return fmt.Sprintf("%s by %s, %d", b.title, b.author, b.year)
}

// DigitalBook 電子書，多一個檔案大小 (MB)
type DigitalBook struct {
	Book
	fileSizeMB decimal.Decimal
}

func NewDigitalBook(title, author string, year int, fileSizeMB decimal.Decimal) *DigitalBook {
	return &DigitalBook{
		Book:       Book{title: title, author: author, year: year},
		fileSizeMB: fileSizeMB,
	}
}

func (b *DigitalBook) Info() string {
	return fmt.Sprintf("%s, File Size: %sMB", b.Book.Info(), b.fileSizeMB.String())
}

// Library 依加入順序保存書籍
type Library struct {
	books *collection.Collection[string, Item]
}

func New() *Library {
	return &Library{
		books: collection.New(func(i Item) string { return i.Title() }),
	}
}

// Add 加入一本書 (允許同名)
func (l *Library) Add(book Item) {
	l.books.Add(book)
}

// Remove 移除所有同名的書，回傳移除數量
func (l *Library) Remove(title string) int {
	return l.books.Remove(title)
}

// Find 依書名搜尋，回傳第一本相符的書的 Info
func (l *Library) Find(title string) (string, error) {
	book, ok := l.books.Find(title)
	if !ok {
		return "", ErrBookNotFound
	}
	return book.Info(), nil
}

// List 所有書的 Info
func (l *Library) List() []string {
	books := l.books.List()
	out := make([]string, 0, len(books))
	for _, b := range books {
		out = append(out, b.Info())
	}
	return out
}

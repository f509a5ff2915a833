package capture

import (
	"errors"
	"strings"

	"github.com/go-shiori/go-readability"
	"github.com/markusmobius/go-trafilatura"
	"golang.org/x/net/html"
)

// main parser
func ParseHTMLWithReadability(htmlStr string) (string, error) {
	doc, err := html.Parse(strings.NewReader(htmlStr))
	if err != nil {
		return "", err
	}

	article, err := readability.FromDocument(doc, nil)
	if err != nil {
		return "", err
	}
	return article.TextContent, nil
}

func ParseHTMLWithTrafilatura(htmlStr string) (string, error) {
	opts := trafilatura.Options{}

	article, err := trafilatura.Extract(strings.NewReader(htmlStr), opts)
	if err != nil {
		return "", err
	}

	return article.ContentText, nil
}

// ExtractText는 readability를 먼저 시도하고, 실패하거나 빈 결과가 나오면
// trafilatura로 폴백한다. 양쪽 모두 실패하면 에러를 반환한다.
func ExtractText(htmlStr string) (string, error) {
	text, err := ParseHTMLWithReadability(htmlStr)
	if err == nil && strings.TrimSpace(text) != "" {
		return strings.TrimSpace(text), nil
	}

	text, tErr := ParseHTMLWithTrafilatura(htmlStr)
	if tErr == nil && strings.TrimSpace(text) != "" {
		return strings.TrimSpace(text), nil
	}

	if err == nil {
		err = tErr
	}
	if err == nil {
		err = errors.New("no text content extracted")
	}
	return "", err
}

package main

import (
	"fmt"
	"net/http"
	"sync"

	"github.com/RobertWHurst/signpost"
)

func main() {
	router := signpost.NewRouter()
	store := &ArticleStore{articles: map[string]string{}}

	router.MustAddRoute("GET", "articles", "/articles", nil, nil).
		Bind(func(res http.ResponseWriter, req *http.Request) {
			for _, id := range store.IDs() {
				link, _ := router.Build("article", map[string]string{"id": id, "format": "html"})
				fmt.Fprintln(res, link)
			}
		})

	router.MustAddRoute("GET", "article", "/articles/<id>(.<format>)",
		signpost.Conditions{
			"id":     signpost.Matching(`\d+`),
			"format": signpost.OneOf("html", "txt"),
		},
		signpost.Defaults{"format": "html"},
	).Bind(func(res http.ResponseWriter, req *http.Request) {
		params := signpost.ParamsFromRequest(req)

		body, ok := store.Get(params["id"])
		if !ok {
			http.NotFound(res, req)
			return
		}
		if params["format"] == "txt" {
			res.Header().Set("Content-Type", "text/plain")
			fmt.Fprintln(res, body)
			return
		}
		res.Header().Set("Content-Type", "text/html")
		fmt.Fprintf(res, "<p>%s</p>\n", body)
	})

	router.MustAddRoute("POST", "createArticle", "/articles/<id>", nil, nil).
		Bind(func(res http.ResponseWriter, req *http.Request) {
			params := signpost.ParamsFromRequest(req)
			store.Put(params["id"], params.Get("body"))

			link, _ := router.Build("article", map[string]string{"id": params["id"]})
			res.Header().Set("Location", link)
			res.WriteHeader(http.StatusCreated)
		})

	http.Handle("/", router)
	fmt.Println("Starting server on port 8167")
	err := http.ListenAndServe(":8167", nil)
	if err != nil {
		fmt.Println("Error starting server:", err)
	}
}

type ArticleStore struct {
	mx       sync.Mutex
	articles map[string]string
	order    []string
}

func (s *ArticleStore) Put(id, body string) {
	s.mx.Lock()
	defer s.mx.Unlock()
	if _, ok := s.articles[id]; !ok {
		s.order = append(s.order, id)
	}
	s.articles[id] = body
}

func (s *ArticleStore) Get(id string) (string, bool) {
	s.mx.Lock()
	defer s.mx.Unlock()
	body, ok := s.articles[id]
	return body, ok
}

func (s *ArticleStore) IDs() []string {
	s.mx.Lock()
	defer s.mx.Unlock()
	return append([]string(nil), s.order...)
}

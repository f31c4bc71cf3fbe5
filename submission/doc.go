// Package submission é o adapter HTTP do POST /submit.
//
// Ordem do pipeline por request:
//
//  1. RequestID / Recoverer / log (chi middlewares)
//  2. rate limit por cliente e limite de concorrência (middleware/ratelimit),
//     que registra a tentativa antes de olhar o corpo
//  3. Handler: decodifica o JSON, chama application.Service.Submit e traduz o
//     resultado para {ok, message} com 200/400/500
//
// Qualquer outro caminho serve arquivos estáticos de PublicDir.
package submission

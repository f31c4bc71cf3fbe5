// Package application contém os casos de uso de rate limit e limite de concorrência.
//
// Depende apenas do pacote domain e não conhece net/http.
// Ex.: Service.Decide(key) registra a tentativa e retorna uma Decision.
package application

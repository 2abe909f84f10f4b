// Package resource provides typed services over the console backend collections
// (orders, users, customers, catalog, statistics) built on client.Interface.
package resource

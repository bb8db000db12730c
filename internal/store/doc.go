// Package store manages the single long-lived connection between the gateway
// and its MongoDB-compatible document store.
//
// A Manager is created and connected once while the process starts, before
// any listener is bound. Request handlers borrow it for one operation at a
// time and never close or replace it; the driver's own pool is the only
// pooling in play. PoolStatus exposes the server's view of that pool so each
// request can report how many connections are in use.
package store

// Command apogee ingests academic transcript exports and answers queries
// over the resulting grade database.
package main

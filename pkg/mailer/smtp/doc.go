// Package smtp delivers mailer.Email values over SMTP submission.
//
// Messages are composed with mailer.WriteMessage and submitted with PLAIN
// authentication over STARTTLS (port 587), implicit TLS (port 465) or, for local
// mail catchers, no TLS at all. The zero-config defaults point at smtp.gmail.com:587,
// where Password is an app password.
package smtp

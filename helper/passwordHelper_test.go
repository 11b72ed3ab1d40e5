package helper

import "testing"

func TestPasswordRoundTrip(t *testing.T) {
	hash, err := HashPassword("s3cret-pass")
	if err != nil {
		t.Fatal(err)
	}
	if hash == "s3cret-pass" {
		t.Fatal("password stored in clear")
	}
	if ok, msg := VerifyPassword("s3cret-pass", hash); !ok {
		t.Errorf("correct password rejected: %s", msg)
	}
	if ok, msg := VerifyPassword("wrong", hash); ok || msg != "Incorrect password" {
		t.Errorf("wrong password: ok=%v msg=%q", ok, msg)
	}
}

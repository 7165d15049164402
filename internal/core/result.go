package core

// Result, bir modül kurulumunun sonucudur.
// Bu yapı, sadece hatayı değil, nasıl kurulduğunu ve kullanıcıya gösterilecek mesajı da içerir.
type Result struct {
	Module  string
	Package string        // OS package name when one was used
	Method  InstallMethod // how the module was satisfied

	// Changed: Sistemde bir değişiklik yapıldı mı?
	Changed bool

	// Failed: İşlem başarısız mı oldu?
	Failed bool

	// Message: Kullanıcıya gösterilecek insan tarafından okunabilir mesaj.
	Message string

	// Error: Eğer işlem başarısızsa teknik hata detayı.
	Error error
}

// SuccessChange, başarılı ve değişiklik içeren bir sonuç döner.
func SuccessChange(msg string) Result {
	return Result{
		Changed: true,
		Failed:  false,
		Message: msg,
	}
}

// SuccessNoChange, başarılı ama değişiklik içermeyen bir sonuç döner.
func SuccessNoChange(msg string) Result {
	return Result{
		Changed: false,
		Failed:  false,
		Message: msg,
	}
}

// Failure, başarısız bir sonuç döner.
func Failure(err error, msg string) Result {
	return Result{
		Changed: false,
		Failed:  true,
		Message: msg,
		Error:   err,
	}
}

// OK reports whether the module is satisfied.
func (r Result) OK() bool {
	return !r.Failed
}

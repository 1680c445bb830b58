package i18n_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"avenqor/internal/domain/value"
	"avenqor/internal/i18n"
)

const enYAML = `
locale: en
nav:
  courses: Courses
  packs: Token Packs
  cart: Cart
  account: Account
  contact: Contact
  signIn: Sign in
  signOut: Sign out
  register: Create account
pricing:
  quoteTitle: Your quote
  tokensLabel: Tokens
  priceLabel: Price
  submitCourse: Order custom course
  submitAi: Order AI strategy
  topUpRequired: Not enough tokens.
cart:
  empty: Your cart is empty.
  total: Total
  checkout: Checkout
  remove: Remove
auth:
  emailLabel: Email
  passwordLabel: Password
  forgotPassword: Forgot your password?
  resetSent: Reset link sent.
errors:
  generic: Something went wrong.
  validation: Please check the fields.
  insufficientBalance: Balance too low.
`

const arYAML = `
locale: ar
nav:
  courses: الدورات
  packs: الباقات
  cart: السلة
  account: الحساب
  contact: تواصل
  signIn: دخول
  signOut: خروج
  register: حساب جديد
pricing:
  quoteTitle: عرض السعر
  tokensLabel: التوكنز
  priceLabel: السعر
  submitCourse: اطلب دورة
  submitAi: اطلب استراتيجية
  topUpRequired: الرصيد غير كافٍ.
cart:
  empty: السلة فارغة.
  total: الإجمالي
  checkout: إتمام الشراء
  remove: إزالة
auth:
  emailLabel: البريد
  passwordLabel: كلمة المرور
  forgotPassword: نسيت كلمة المرور؟
  resetSent: تم الإرسال.
errors:
  generic: حدث خطأ.
  validation: راجع الحقول.
  insufficientBalance: الرصيد منخفض.
`

func writeBundles(t *testing.T, en, ar string) string {
	t.Helper()

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "en.yaml"), []byte(en), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "ar.yaml"), []byte(ar), 0o600))

	return dir
}

func TestLoadCatalog(t *testing.T) {
	rq := require.New(t)

	catalog, err := i18n.LoadCatalog(writeBundles(t, enYAML, arYAML))
	rq.NoError(err)

	en := catalog.Bundle(value.LocaleEN)
	rq.Equal("Courses", en.Nav.Courses)

	ar := catalog.Bundle(value.LocaleAR)
	rq.Equal("السلة", ar.Nav.Cart)

	// Unsupported locales fall back to the default.
	fallback := catalog.Bundle(value.Locale("fr"))
	rq.Equal(value.LocaleEN, fallback.Locale)
}

func TestLoadCatalogRejectsMissingKey(t *testing.T) {
	rq := require.New(t)

	broken := enYAML
	broken = broken[:len(broken)-len("insufficientBalance: Balance too low.\n")]

	_, err := i18n.LoadCatalog(writeBundles(t, broken, arYAML))
	rq.Error(err)
	rq.Contains(err.Error(), "incomplete")
}

func TestLoadCatalogRejectsUnknownKey(t *testing.T) {
	rq := require.New(t)

	_, err := i18n.LoadCatalog(writeBundles(t, enYAML+"\nfooter:\n  slogan: Trade smart\n", arYAML))
	rq.Error(err)
}

func TestLoadCatalogRejectsLocaleMismatch(t *testing.T) {
	rq := require.New(t)

	swapped := "locale: ar" + enYAML[len("\nlocale: en"):]

	_, err := i18n.LoadCatalog(writeBundles(t, swapped, arYAML))
	rq.Error(err)
}

package service

import (
	"crypto/rand"
	"errors"
	"fmt"
	"log"
	"math/big"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"learnify_backend/internals/features/certificates/model"
	courseModel "learnify_backend/internals/features/courses/model"
	helper "learnify_backend/internals/helpers"
	"learnify_backend/internals/services/email"
)

var ErrCourseNotFound = errors.New("course not found")

// verification codes are typed by humans off a printed certificate: no
// 0/O/1/I/L ambiguity
const verificationCharset = "ABCDEFGHJKMNPQRSTUVWXYZ23456789"

type CertificateService struct {
	DB     *gorm.DB
	Mailer email.Mailer
}

func NewCertificateService(db *gorm.DB, mailer email.Mailer) *CertificateService {
	return &CertificateService{DB: db, Mailer: mailer}
}

// IssueIfEligible creates the certificate for (user, course) at most once.
// Returns (nil, nil) when the course carries no certificate. Safe to call
// repeatedly and safe to call directly for administrative backfill.
func (s *CertificateService) IssueIfEligible(userID, userName, userEmail string, courseID uuid.UUID) (*model.Certificate, error) {
	var course courseModel.Course
	if err := s.DB.Where("course_id = ?", courseID).First(&course).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCourseNotFound
		}
		return nil, err
	}
	if !course.CourseHasCertificate {
		return nil, nil
	}

	if existing, err := s.find(userID, courseID); err == nil {
		return existing, nil
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	// two attempts: the second covers the freak case of a verification-code
	// collision with an unrelated certificate
	for attempt := 0; attempt < 2; attempt++ {
		cert := model.Certificate{
			CertificateUserID:           userID,
			CertificateCourseID:         courseID,
			CertificateUserName:         userName,
			CertificateCourseName:       course.CourseTitle,
			CertificateInstructorName:   course.CourseInstructorName,
			CertificateNumber:           GenerateCertificateNumber(courseID, userID),
			CertificateVerificationCode: GenerateVerificationCode(),
		}
		err := s.DB.Create(&cert).Error
		if err == nil {
			if userEmail != "" {
				if mailErr := s.Mailer.SendCertificateEmail(userEmail, userName, course.CourseTitle, cert.CertificateID.String()); mailErr != nil {
					log.Printf("[WARN] certificate email to %s failed: %v", userEmail, mailErr)
				}
			}
			return &cert, nil
		}
		if !helper.IsDuplicateKey(err) {
			return nil, err
		}
		// someone else finished first, so re-read and return the winner
		if winner, findErr := s.find(userID, courseID); findErr == nil {
			return winner, nil
		} else if !errors.Is(findErr, gorm.ErrRecordNotFound) {
			return nil, findErr
		}
		// no winner row: the conflict was on number/code, retry with fresh ones
	}
	return nil, errors.New("certificate issuance failed after retry")
}

// VerifyByCode is the public lookup behind the trust-display endpoint.
func (s *CertificateService) VerifyByCode(code string) (*model.Certificate, error) {
	var cert model.Certificate
	err := s.DB.Where("certificate_verification_code = ?", strings.ToUpper(strings.TrimSpace(code))).First(&cert).Error
	if err != nil {
		return nil, err
	}
	return &cert, nil
}

func (s *CertificateService) find(userID string, courseID uuid.UUID) (*model.Certificate, error) {
	var cert model.Certificate
	err := s.DB.Where("certificate_user_id = ? AND certificate_course_id = ?", userID, courseID).First(&cert).Error
	if err != nil {
		return nil, err
	}
	return &cert, nil
}

// GenerateCertificateNumber builds a display number from a millisecond
// timestamp, a random suffix and user/course fragments. Effectively unique;
// the DB unique index is the backstop, not this format.
func GenerateCertificateNumber(courseID uuid.UUID, userID string) string {
	ts := strconv.FormatInt(time.Now().UnixMilli(), 36)
	userPart := "ANON"
	if len(userID) >= 4 {
		userPart = userID[:4]
	}
	coursePart := strings.SplitN(courseID.String(), "-", 2)[0]
	return strings.ToUpper(fmt.Sprintf("LEARN-%s-%s-%s-%s", coursePart, userPart, ts, randomString(5)))
}

// GenerateVerificationCode returns 16 chars from an unambiguous charset,
// drawn from a source independent of the certificate number.
func GenerateVerificationCode() string {
	return randomString(16)
}

func randomString(n int) string {
	b := make([]byte, n)
	max := big.NewInt(int64(len(verificationCharset)))
	for i := range b {
		idx, err := rand.Int(rand.Reader, max)
		if err != nil {
			// crypto/rand only fails when the OS entropy source is broken
			panic(err)
		}
		b[i] = verificationCharset[idx.Int64()]
	}
	return string(b)
}
